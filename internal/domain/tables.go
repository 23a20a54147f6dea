package domain

var Tables = []interface{}{
	// System
	&SysAdmin{},
	// Catalog
	&Product{},
}
