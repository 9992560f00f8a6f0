package zone

// Instance is a zone hosting a private copy of instanced content.
// Actors inside it see it as a model.InstanceContent.
type Instance struct {
	*Zone
	contentID uint32
}

// NewInstance creates an empty instance zone.
func NewInstance(id uint32, name string, contentID uint32, opts Options) *Instance {
	inst := &Instance{
		Zone:      New(id, name, opts),
		contentID: contentID,
	}
	inst.self = inst
	return inst
}

// InstanceContentID returns the content hosted by the instance.
func (i *Instance) InstanceContentID() uint32 {
	return i.contentID
}
