package omni

// Property is a named slot on an Object or ArrayPropertiesByPosition.
type Property struct {
	Name         string
	FieldName    string
	AccessorName string
	Type         Type
	Owner        PropertyOwner
	Required     bool
	ReadOnly     bool
	WriteOnly    bool
	Deprecated   bool
	Description  string
	Debug        []string
}

func (*Property) ownsTypes() {}

// NewProperty returns a property named name of type t.
func NewProperty(name string, t Type) *Property {
	return &Property{Name: name, Type: t}
}

// PropertyOwner is a type that carries an ordered property list.
type PropertyOwner interface {
	Type
	propertyList() *[]*Property
}

func (o *Object) propertyList() *[]*Property                    { return &o.Properties }
func (a *ArrayPropertiesByPosition) propertyList() *[]*Property { return &a.Properties }

// PropertiesOf returns the properties declared directly on t, or nil.
func PropertiesOf(t Type) []*Property {
	if o, ok := t.(PropertyOwner); ok {
		return *o.propertyList()
	}
	return nil
}

// FindProperty returns the property named name declared directly on t.
func FindProperty(t Type, name string) *Property {
	for _, p := range PropertiesOf(t) {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AddProperty appends p to owner and sets p.Owner.
func AddProperty(owner PropertyOwner, p *Property) {
	list := owner.propertyList()
	*list = append(*list, p)
	p.Owner = owner
}

// RemoveProperty removes p from owner by identity and reports whether it was present.
func RemoveProperty(owner PropertyOwner, p *Property) bool {
	list := owner.propertyList()
	for i, q := range *list {
		if q == p {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceProperty swaps old for p in place, keeping its position.
// If old is not present, p is appended.
func ReplaceProperty(owner PropertyOwner, old, p *Property) {
	list := owner.propertyList()
	for i, q := range *list {
		if q == old {
			(*list)[i] = p
			p.Owner = owner
			return
		}
	}
	AddProperty(owner, p)
}
