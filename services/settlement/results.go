package settlement

import (
	"context"

	"matka/errs"
	"matka/models"
)

func (e *Engine) dateOrToday(date string) (string, error) {
	if date == "" {
		return e.opts.Clock.Today(), nil
	}
	d, err := e.opts.Clock.Normalize(date)
	if err != nil {
		return "", errs.Validation("date must be DD-MM-YYYY")
	}
	return d, nil
}

// Results lists declared results of a market for one date.
func (e *Engine) Results(ctx context.Context, market models.Market, date, session string) ([]models.Result, error) {
	d, err := e.dateOrToday(date)
	if err != nil {
		return nil, err
	}
	q := e.db.WithContext(ctx).Where("market = ? AND date = ?", market, d)
	if session != "" {
		s, ok := models.ParseSession(session)
		if !ok {
			return nil, errs.Validation("session must be open or close")
		}
		q = q.Where("session = ?", s)
	}

	results := []models.Result{}
	if err := q.Order("game_id, session").Find(&results).Error; err != nil {
		return nil, errs.Internal(err, "list results")
	}
	return results, nil
}

// Pending lists active games that still have no result for the date and session.
func (e *Engine) Pending(ctx context.Context, market models.Market, date, session string) ([]models.Game, error) {
	d, err := e.dateOrToday(date)
	if err != nil {
		return nil, err
	}
	s := models.SessionNone
	if market == models.MarketMain {
		var ok bool
		if s, ok = models.ParseSession(session); !ok {
			return nil, errs.Validation("session must be open or close")
		}
	}

	declared := e.db.Model(&models.Result{}).
		Select("game_id").
		Where("market = ? AND date = ? AND session = ?", market, d, s)

	games := []models.Game{}
	if err := e.db.WithContext(ctx).
		Where("market = ? AND is_active = ? AND id NOT IN (?)", market, true, declared).
		Order("id").
		Find(&games).Error; err != nil {
		return nil, errs.Internal(err, "list pending games")
	}
	return games, nil
}
