package database

import (
	"fmt"

	"matka/config"
	"matka/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seed inserts rates, settings, games and users from the seed file. Tables
// that already hold rows are left alone.
func Seed(db *gorm.DB, seed *config.Seed) error {
	if seed == nil {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if empty, err := isEmpty(tx, &models.Setting{}); err != nil {
			return err
		} else if empty && (seed.Settings.MinBid > 0 || seed.Settings.MaxBid > 0) {
			s := models.Setting{MinBid: seed.Settings.MinBid, MaxBid: seed.Settings.MaxBid}
			if err := tx.Create(&s).Error; err != nil {
				return fmt.Errorf("seed settings: %w", err)
			}
		}

		if empty, err := isEmpty(tx, &models.Rate{}); err != nil {
			return err
		} else if empty {
			for market, r := range seed.Rates {
				row := r.Model(models.Market(market))
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("seed rates %s: %w", market, err)
				}
			}
		}

		if empty, err := isEmpty(tx, &models.Game{}); err != nil {
			return err
		} else if empty {
			for _, g := range seed.Games {
				row := g.Model()
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("seed game %s: %w", g.Name, err)
				}
			}
		}

		if empty, err := isEmpty(tx, &models.User{}); err != nil {
			return err
		} else if empty {
			for _, u := range seed.Users {
				row := models.User{Name: u.Name, Phone: u.Phone, Balance: u.Balance}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("seed user %s: %w", u.Name, err)
				}
			}
		}

		logrus.WithFields(logrus.Fields{
			"rates": len(seed.Rates),
			"games": len(seed.Games),
			"users": len(seed.Users),
		}).Info("seed applied")
		return nil
	})
}

func isEmpty(tx *gorm.DB, model any) (bool, error) {
	var n int64
	if err := tx.Model(model).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}
