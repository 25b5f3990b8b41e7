package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&Role{},
		&Category{},
		&Supplier{},
		&CompanySetting{},

		// 2. Tables with single dependencies
		&User{},    // depends on: Role
		&Product{}, // depends on: Category, Supplier

		// 3. Tables with multiple dependencies
		&Batch{}, // depends on: Product, Supplier
		&Sale{},  // depends on: User

		// 4. Detail tables
		&SaleItem{}, // depends on: Sale, Category
	}
}
