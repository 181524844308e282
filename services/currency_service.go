package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"travel-backend/models"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

type CurrencyInput struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	ExchangeRate float64 `json:"exchangeRate"`
	IsDefault    bool    `json:"isDefault"`
	IsActive     *bool   `json:"isActive"`
}

type CurrencyService struct {
	DB *gorm.DB
}

func NewCurrencyService(db *gorm.DB) *CurrencyService {
	return &CurrencyService{DB: db}
}

// ListActive returns the currencies offered in the public selector, the
// default first.
func (s *CurrencyService) ListActive(ctx context.Context) ([]models.Currency, error) {
	var out []models.Currency
	err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("is_default DESC").
		Order("code ASC").
		Find(&out).Error
	return out, err
}

func (s *CurrencyService) List(ctx context.Context) ([]models.Currency, error) {
	var out []models.Currency
	err := s.DB.WithContext(ctx).Order("is_default DESC").Order("code ASC").Find(&out).Error
	return out, err
}

func (s *CurrencyService) Get(ctx context.Context, id uint) (*models.Currency, error) {
	var c models.Currency
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "currency")
	}
	return &c, nil
}

func (s *CurrencyService) Create(ctx context.Context, in CurrencyInput) (*models.Currency, error) {
	c := models.Currency{IsActive: true}
	if err := applyCurrencyInput(&c, in); err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.IsDefault {
			if err := clearDefaultCurrency(tx, 0); err != nil {
				return err
			}
		}
		return tx.Create(&c).Error
	})
	if isDuplicateKey(err) {
		return nil, duplicate("currency %s already exists", c.Code)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update rewrites a currency. Marking it default clears the flag on every
// other currency in the same transaction.
func (s *CurrencyService) Update(ctx context.Context, id uint, in CurrencyInput) (*models.Currency, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCurrencyInput(c, in); err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.IsDefault {
			if err := clearDefaultCurrency(tx, c.ID); err != nil {
				return err
			}
		}
		return tx.Model(c).Select("code", "name", "symbol", "exchange_rate", "is_default", "is_active", "updated_at").Updates(c).Error
	})
	if isDuplicateKey(err) {
		return nil, duplicate("currency %s already exists", c.Code)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a currency that no package price references.
func (s *CurrencyService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Currency
		if err := tx.First(&c, id).Error; err != nil {
			return notFound(err, "currency")
		}
		var refs int64
		if err := tx.Model(&models.PackagePrice{}).Where("currency_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: currency %s is used by %d package price(s)", ErrInUse, c.Code, refs)
		}
		return tx.Delete(&c).Error
	})
}

func applyCurrencyInput(c *models.Currency, in CurrencyInput) error {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if !currencyCodePattern.MatchString(code) {
		return invalid("currency code must be three letters")
	}
	symbol := strings.TrimSpace(in.Symbol)
	if symbol == "" {
		return invalid("symbol is required")
	}
	rate := in.ExchangeRate
	if rate == 0 {
		rate = 1
	}
	if rate < 0 {
		return invalid("exchange rate must be positive")
	}

	c.Code = code
	c.Name = strings.TrimSpace(in.Name)
	c.Symbol = symbol
	c.ExchangeRate = rate
	c.IsDefault = in.IsDefault
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if c.IsDefault && !c.IsActive {
		return invalid("the default currency must be active")
	}
	return nil
}

func clearDefaultCurrency(tx *gorm.DB, exceptID uint) error {
	q := tx.Model(&models.Currency{}).Where("is_default = ?", true)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	return q.Update("is_default", false).Error
}
