package domain

import "slices"

// Catalog is the set of namespaces the search gateway can filter on.
// It is built once at start-up and never mutated afterwards.
type Catalog struct {
	namespaces []string
}

// NewCatalog creates a Catalog from the given namespaces, dropping
// empty entries and duplicates while preserving order.
func NewCatalog(namespaces []string) Catalog {
	seen := make(map[string]bool, len(namespaces))
	ns := make([]string, 0, len(namespaces))
	for _, n := range namespaces {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		ns = append(ns, n)
	}
	return Catalog{namespaces: ns}
}

// DefaultNamespaces returns the built-in namespace list.
func DefaultNamespaces() []string {
	return []string{
		NamespaceInstitution,
		NamespaceCollection,
		NamespaceSeries,
		NamespaceFileUnit,
		NamespaceDigitalObject,
	}
}

// Namespaces returns a copy of the catalog's namespaces.
func (c Catalog) Namespaces() []string {
	return slices.Clone(c.namespaces)
}

// Contains reports whether ns is a known namespace.
func (c Catalog) Contains(ns string) bool {
	return slices.Contains(c.namespaces, ns)
}

// Len returns the number of namespaces.
func (c Catalog) Len() int {
	return len(c.namespaces)
}

// CatalogRecord is a typed view over the well-known fields of a catalog
// record component. Unknown fields are ignored here and preserved in the
// raw value.
type CatalogRecord struct {
	Title               string           `mapstructure:"title"`
	Level               string           `mapstructure:"level"`
	NativeID            *int64           `mapstructure:"naId"`
	GeneralRecordsTypes []string         `mapstructure:"generalRecordsTypes"`
	Filename            string           `mapstructure:"filename"`
	FileSize            *int64           `mapstructure:"fileSize"`
	DigitalObjects      []any            `mapstructure:"digitalObjects"`
	AccessRestriction   *AccessStatus    `mapstructure:"accessRestriction"`
	PhysicalOccurrences []PhysicalRecord `mapstructure:"physicalOccurrences"`
}

// AccessStatus is the access restriction block of a catalog record.
type AccessStatus struct {
	Status string `mapstructure:"status"`
}

// PhysicalRecord is one physical occurrence of the described material.
type PhysicalRecord struct {
	ReferenceUnits []ReferenceUnit `mapstructure:"referenceUnits"`
}

// ReferenceUnit is a holding location of the material.
type ReferenceUnit struct {
	Name  string `mapstructure:"name"`
	City  string `mapstructure:"city"`
	State string `mapstructure:"state"`
}

// FirstReferenceUnit returns the first reference location, if any.
func (r *CatalogRecord) FirstReferenceUnit() (ReferenceUnit, bool) {
	for _, occ := range r.PhysicalOccurrences {
		if len(occ.ReferenceUnits) > 0 {
			return occ.ReferenceUnits[0], true
		}
	}
	return ReferenceUnit{}, false
}
