package database

import (
	"fmt"
	"log"
	"time"

	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData populates the database with roles, users, a small catalog
// and a block of recent demo sales so the dashboards have data to show.
// Safe to re-run: it skips seeding when roles already exist.
func SeedData(db *gorm.DB) error {
	var roleCount int64
	if err := db.Model(&models.Role{}).Count(&roleCount).Error; err != nil {
		return fmt.Errorf("failed to check existing roles: %w", err)
	}
	if roleCount > 0 {
		log.Println("Database already seeded, skipping")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		roles := []models.Role{
			{RoleName: models.RoleAdmin},
			{RoleName: models.RoleCashier},
		}
		if err := tx.Create(&roles).Error; err != nil {
			return fmt.Errorf("failed to seed roles: %w", err)
		}

		adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		cashierHash, err := bcrypt.GenerateFromPassword([]byte("cashier123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		users := []models.User{
			{Username: "admin", PasswordHash: string(adminHash), FullName: "System Admin", EmployeeCode: "EMP001", RoleID: roles[0].RoleID},
			{Username: "ama", PasswordHash: string(cashierHash), FullName: "Ama Mensah", EmployeeCode: "EMP002", RoleID: roles[1].RoleID},
			{Username: "kofi", PasswordHash: string(cashierHash), FullName: "Kofi Boateng", EmployeeCode: "EMP003", RoleID: roles[1].RoleID},
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		categories := []models.Category{
			{CategoryName: "Beverages"},
			{CategoryName: "Snacks"},
			{CategoryName: "Household"},
			{CategoryName: "Toiletries"},
			{CategoryName: "Dairy"},
			{CategoryName: "Grains"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		suppliers := []models.Supplier{
			{SupplierName: "Accra Wholesale Ltd"},
			{SupplierName: "Tema Distribution Co"},
		}
		if err := tx.Create(&suppliers).Error; err != nil {
			return fmt.Errorf("failed to seed suppliers: %w", err)
		}

		type seedProduct struct {
			name     string
			category int
			cost     string
			price    string
			qty      int
		}
		seedProducts := []seedProduct{
			{"Bottled Water 1.5L", 0, "2.00", "3.50", 200},
			{"Cola 500ml", 0, "4.00", "6.00", 150},
			{"Plantain Chips", 1, "3.00", "5.00", 120},
			{"Biscuits Pack", 1, "5.00", "8.00", 100},
			{"Washing Powder 1kg", 2, "12.00", "18.00", 80},
			{"Toilet Roll 4pk", 3, "8.00", "12.00", 90},
			{"Fresh Milk 1L", 4, "9.00", "13.00", 60},
			{"Rice 5kg", 5, "45.00", "60.00", 40},
		}

		now := time.Now()
		for i, sp := range seedProducts {
			product := models.Product{
				ProductName:    sp.name,
				CategoryID:     categories[sp.category].CategoryID,
				SupplierID:     suppliers[i%len(suppliers)].SupplierID,
				QuantityOnHand: sp.qty,
				QuantityTotal:  sp.qty,
				CostPrice:      decimal.RequireFromString(sp.cost),
				SellingPrice:   decimal.RequireFromString(sp.price),
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", sp.name, err)
			}

			expiry := now.AddDate(0, 6+i, 0)
			batch := models.Batch{
				BatchNumber:  fmt.Sprintf("BN-%s-%03d", now.Format("200601"), i+1),
				ProductID:    product.ProductID,
				SupplierID:   product.SupplierID,
				ExpiryDate:   &expiry,
				Quantity:     sp.qty,
				QuantityLeft: sp.qty,
				CostPrice:    product.CostPrice,
				SellingPrice: product.SellingPrice,
			}
			if err := tx.Create(&batch).Error; err != nil {
				return fmt.Errorf("failed to seed batch for %s: %w", sp.name, err)
			}
		}

		setting := models.CompanySetting{
			CompanyName: "HalimKing Stores",
			Currency:    "GHS",
		}
		if err := tx.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to seed company settings: %w", err)
		}

		if err := seedDemoSales(tx, users[1:]); err != nil {
			return err
		}

		log.Println("Database seeded successfully")
		return nil
	})
}

// seedDemoSales writes a spread of completed sales across the trailing
// week so trend charts and shift metrics render non-empty out of the box.
func seedDemoSales(tx *gorm.DB, cashiers []models.User) error {
	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return err
	}

	now := time.Now()
	methods := []models.PaymentMethod{models.PaymentCash, models.PaymentCard}

	for day := 0; day < 7; day++ {
		for n := 0; n < 3; n++ {
			cashier := cashiers[(day+n)%len(cashiers)]
			product := products[(day*3+n)%len(products)]
			qty := 1 + (day+n)%3
			lineTotal := product.SellingPrice.Mul(decimal.NewFromInt(int64(qty)))

			sale := models.Sale{
				SaleID:         uuid.NewString(),
				Subtotal:       lineTotal,
				DiscountAmount: decimal.Zero,
				GrandTotal:     lineTotal,
				AmountPaid:     lineTotal,
				ChangeAmount:   decimal.Zero,
				PaymentMethod:  methods[(day+n)%len(methods)],
				Status:         models.SaleStatusCompleted,
				UserID:         cashier.UserID,
				CreatedAt:      now.AddDate(0, 0, -day).Add(-time.Duration(n) * time.Hour),
			}
			if err := tx.Create(&sale).Error; err != nil {
				return fmt.Errorf("failed to seed demo sale: %w", err)
			}

			item := models.SaleItem{
				SaleID:      sale.SaleID,
				ProductID:   product.ProductID,
				ProductName: product.ProductName,
				CategoryID:  product.CategoryID,
				Quantity:    qty,
				UnitPrice:   product.SellingPrice,
				TotalAmount: lineTotal,
				Profit:      product.UnitProfit().Mul(decimal.NewFromInt(int64(qty))),
				CreatedAt:   sale.CreatedAt,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to seed demo sale item: %w", err)
			}
		}
	}
	return nil
}
