package loader

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedSet holds the baseline rows for each table.
type SeedSet struct {
	OrderStatuses []string
	Products      []ProductSeed
	Customers     []CustomerSeed
	Orders        []OrderSeed
}

type ProductSeed struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Category    string
}

type CustomerSeed struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

type OrderSeed struct {
	ProductID   int64
	CustomerID  int64
	StatusID    int64
	Quantity    int
	TotalAmount decimal.Decimal
}

type yamlFile struct {
	OrderStatus []string       `yaml:"order_status"`
	Products    []yamlProduct  `yaml:"products"`
	Customers   []yamlCustomer `yaml:"customers"`
	Orders      []yamlOrder    `yaml:"orders"`
}

type yamlProduct struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Quantity    int    `yaml:"quantity"`
	Category    string `yaml:"category"`
}

type yamlCustomer struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
}

type yamlOrder struct {
	ProductID   int64  `yaml:"product_id"`
	CustomerID  int64  `yaml:"customer_id"`
	StatusID    int64  `yaml:"status_id"`
	Quantity    int    `yaml:"quantity"`
	TotalAmount string `yaml:"total_amount"`
}

// DefaultSeed returns the embedded baseline data.
func DefaultSeed() (*SeedSet, error) {
	return LoadSeed(defaultSeed)
}

// LoadSeedFile reads seed data from filename.
func LoadSeedFile(filename string) (*SeedSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return LoadSeed(data)
}

// LoadSeed parses a seed document.
func LoadSeed(data []byte) (*SeedSet, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	set := &SeedSet{OrderStatuses: yf.OrderStatus}

	for i, p := range yf.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("products[%d] %q: invalid price %q: %w", i, p.Name, p.Price, err)
		}
		set.Products = append(set.Products, ProductSeed{
			Name:        p.Name,
			Description: p.Description,
			Price:       price,
			Quantity:    p.Quantity,
			Category:    p.Category,
		})
	}

	for _, c := range yf.Customers {
		set.Customers = append(set.Customers, CustomerSeed(c))
	}

	for i, o := range yf.Orders {
		total, err := decimal.NewFromString(o.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("orders[%d]: invalid total_amount %q: %w", i, o.TotalAmount, err)
		}
		set.Orders = append(set.Orders, OrderSeed{
			ProductID:   o.ProductID,
			CustomerID:  o.CustomerID,
			StatusID:    o.StatusID,
			Quantity:    o.Quantity,
			TotalAmount: total,
		})
	}

	return set, nil
}
