package repository

import (
	"context"
	"fmt"

	"github.com/devcom-labs/devcom-store/models"
	"github.com/devcom-labs/devcom-store/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepo reserves and releases catalog stock at checkout time.
type StockRepo struct {
	db *gorm.DB
}

// NewStockRepo creates a StockRepo.
func NewStockRepo(db *gorm.DB) *StockRepo {
	return &StockRepo{db: db}
}

// Reserve locks each product row, validates availability and decrements
// stock inside a single transaction; any shortfall rolls the whole
// reservation back.
func (r *StockRepo) Reserve(ctx context.Context, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, item.ProductID).Error; err != nil {
				return utils.NotFoundError(fmt.Sprintf("Product %d not found", item.ProductID))
			}
			if product.Stock < item.Quantity {
				return utils.BadRequestError(
					fmt.Sprintf("'%s' does not have enough stock", product.Name),
					map[string]interface{}{
						"product_id":      product.ID,
						"available_stock": product.Stock,
						"requested":       item.Quantity,
					},
				)
			}
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Release credits stock back after a failed payment session or a
// cancelled unpaid order.
func (r *StockRepo) Release(ctx context.Context, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
