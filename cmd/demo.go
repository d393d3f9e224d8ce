package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ordermigrate/store"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the CRUD walkthrough against a ready database",
	Long: `Migrate, verify readiness, then create, read, update and delete sample
records and print the order and customer reports.

Examples:
  ordermigrate demo
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		m, err := sess.migrator()
		if err != nil {
			return err
		}
		if _, err := m.Run(ctx); err != nil {
			return err
		}
		printRowCounts(m.RowCounts(ctx))

		return runDemo(ctx, store.New(sess.conn))
	},
}

func section(title string) {
	fmt.Println()
	color.New(color.FgBlue, color.Bold).Println(title)
	fmt.Println(strings.Repeat("-", 40))
}

func runDemo(ctx context.Context, s *store.Store) error {
	section("1. Existing data")
	products, err := s.ListProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("   #%d %s | %s | %s | stock %d\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Quantity)
	}
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return err
	}
	for _, c := range customers {
		fmt.Printf("   #%d %s | %s | %s\n", c.ID, c.FullName(), c.Email, c.Phone)
	}
	if err := printRecentOrders(ctx, s, 5); err != nil {
		return err
	}

	section("2. Create")
	suffix := uuid.NewString()[:8]
	productID, err := s.CreateProduct(ctx, store.Product{
		Name:        "Apple iPad Air " + suffix,
		Description: "10.9-inch Retina tablet with an M1 chip",
		Price:       decimal.RequireFromString("55000.00"),
		Quantity:    8,
		Category:    "Electronics",
	})
	if err != nil {
		return err
	}
	fmt.Printf("   product #%d created\n", productID)

	customerID, err := s.CreateCustomer(ctx, store.Customer{
		FirstName: "David",
		LastName:  "Davydov",
		Phone:     "+7916" + suffix[:7],
		Email:     "david.davydov." + suffix + "@mail.ru",
	})
	if err != nil {
		return err
	}
	fmt.Printf("   customer #%d created\n", customerID)

	orderID, err := s.CreateOrder(ctx, store.Order{
		ProductID:   productID,
		CustomerID:  customerID,
		StatusID:    1,
		Quantity:    2,
		TotalAmount: decimal.RequireFromString("110000.00"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("   order #%d created\n", orderID)

	section("3. Read")
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	fmt.Printf("   %s costs %s, %d in stock\n", product.Name, product.Price.StringFixed(2), product.Quantity)
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return err
	}
	fmt.Printf("   %s <%s>\n", customer.FullName(), customer.Email)

	section("4. Update")
	newPrice := decimal.RequireFromString("52000.00")
	if err := s.UpdateProductPrice(ctx, productID, newPrice); err != nil {
		return err
	}
	fmt.Printf("   price of #%d set to %s\n", productID, newPrice.StringFixed(2))
	if err := s.UpdateProductQuantity(ctx, productID, product.Quantity-2); err != nil {
		return err
	}
	fmt.Printf("   stock of #%d set to %d\n", productID, product.Quantity-2)

	section("5. Delete")
	if err := s.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	fmt.Printf("   order #%d deleted\n", orderID)

	section("6. Reports")
	if err := printRecentOrders(ctx, s, 5); err != nil {
		return err
	}
	popular, err := s.PopularProducts(ctx, 5)
	if err != nil {
		return err
	}
	fmt.Println("🏆 Popular products:")
	for _, p := range popular {
		fmt.Printf("   %s | %s | sold %d | revenue %s\n", p.Name, p.Category, p.UnitsSold, p.Revenue.StringFixed(2))
	}

	orders, err := s.OrderStatistics(ctx)
	if err != nil {
		return err
	}
	fmt.Println("📈 Orders:")
	fmt.Printf("   total %d | revenue %s | average %s\n", orders.TotalOrders, orders.TotalRevenue.StringFixed(2), orders.AverageOrderValue.StringFixed(2))
	if orders.FirstOrder != nil && orders.LastOrder != nil {
		fmt.Printf("   first %s | last %s\n", orders.FirstOrder.Format("2006-01-02 15:04"), orders.LastOrder.Format("2006-01-02 15:04"))
	}

	cs, err := s.CustomerStatistics(ctx)
	if err != nil {
		return err
	}
	fmt.Println("👥 Customers:")
	fmt.Printf("   total %d | unique emails %d | with phone %d\n", cs.TotalCustomers, cs.UniqueEmails, cs.CustomersWithPhone)

	fmt.Println()
	color.Green("✅ All operations completed")
	return nil
}

func printRecentOrders(ctx context.Context, s *store.Store, limit int) error {
	orders, err := s.RecentOrders(ctx, limit)
	if err != nil {
		return err
	}
	fmt.Println("🧾 Recent orders:")
	for _, o := range orders {
		fmt.Printf("   #%d | %s | %s | x%d | %s | %s\n", o.ID, o.ProductName, o.CustomerName, o.Quantity, o.TotalAmount.StringFixed(2), o.Status)
	}
	return nil
}
