package component

// AvatarTag marks an entity driven by a traversal machine. Prefab is the
// file it was built from, so a reload can find it again.
type AvatarTag struct {
	Name   string
	Prefab string
}

var AvatarTagComponent = NewComponent[AvatarTag]()
