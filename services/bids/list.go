package bids

import (
	"context"
	"time"

	"matka/errs"
	"matka/models"

	"golang.org/x/sync/errgroup"
)

type ListFilter struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	GameID    uint   `query:"gameId"`
	GameType  string `query:"gameType"`
	Session   string `query:"session"`
	UserID    uint   `query:"userId"`
}

// Row is one wager joined with its bid, game and user.
type Row struct {
	BidID      uint            `json:"bidId"`
	Reference  string          `json:"reference"`
	WagerID    uint            `json:"wagerId"`
	UserID     uint            `json:"userId"`
	UserName   string          `json:"userName"`
	GameID     uint            `json:"gameId"`
	GameName   string          `json:"gameName"`
	GameType   models.GameType `json:"gameType"`
	Session    models.Session  `json:"session,omitempty"`
	Digit      string          `json:"digit,omitempty"`
	Panna      string          `json:"panna,omitempty"`
	OpenPanna  string          `json:"openPanna,omitempty"`
	ClosePanna string          `json:"closePanna,omitempty"`
	Amount     int64           `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Listing struct {
	Rows        []Row `json:"rows"`
	Count       int   `json:"count"`
	TotalAmount int64 `json:"totalAmount"`
}

func (s *Service) List(ctx context.Context, market models.Market, f ListFilter) (*Listing, error) {
	if f.StartDate == "" {
		f.StartDate = s.clock.Today()
	}
	if f.EndDate == "" {
		f.EndDate = f.StartDate
	}
	start, err := s.clock.ParseDate(f.StartDate)
	if err != nil {
		return nil, errs.Validation("invalid startDate")
	}
	_, end, err := s.clock.DayBounds(f.EndDate)
	if err != nil {
		return nil, errs.Validation("invalid endDate")
	}
	if !end.After(start) {
		return nil, errs.Validation("endDate is before startDate")
	}

	q := s.db.WithContext(ctx).Table("wagers").
		Select(`bids.id AS bid_id, bids.reference, wagers.id AS wager_id, bids.user_id,
			wagers.game_id, wagers.game_type, wagers.session, wagers.digit, wagers.panna,
			wagers.open_panna, wagers.close_panna, wagers.amount, bids.created_at`).
		Joins("JOIN bids ON bids.id = wagers.bid_id AND bids.deleted_at IS NULL").
		Where("bids.market = ? AND bids.created_at >= ? AND bids.created_at < ?", market, start.UTC(), end.UTC())
	if f.GameID != 0 {
		q = q.Where("wagers.game_id = ?", f.GameID)
	}
	if f.GameType != "" && f.GameType != "all" {
		q = q.Where("wagers.game_type = ?", f.GameType)
	}
	if f.Session != "" {
		sess, ok := models.ParseSession(f.Session)
		if !ok {
			return nil, errs.Validation("session must be open or close")
		}
		q = q.Where("wagers.session = ?", sess)
	}
	if f.UserID != 0 {
		q = q.Where("bids.user_id = ?", f.UserID)
	}

	var rows []Row
	if err := q.Order("bids.created_at DESC, wagers.position ASC").Scan(&rows).Error; err != nil {
		return nil, errs.Internal(err, "list bids")
	}
	if len(rows) == 0 {
		return &Listing{Rows: []Row{}}, nil
	}

	gameIDs, userIDs := map[uint]struct{}{}, map[uint]struct{}{}
	for _, r := range rows {
		gameIDs[r.GameID] = struct{}{}
		userIDs[r.UserID] = struct{}{}
	}

	gameNames := map[uint]string{}
	userNames := map[uint]string{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var games []models.Game
		if err := s.db.WithContext(gctx).Select("id", "name").Where("id IN ?", keys(gameIDs)).Find(&games).Error; err != nil {
			return err
		}
		for _, gm := range games {
			gameNames[gm.ID] = gm.Name
		}
		return nil
	})
	g.Go(func() error {
		var users []models.User
		if err := s.db.WithContext(gctx).Select("id", "name").Where("id IN ?", keys(userIDs)).Find(&users).Error; err != nil {
			return err
		}
		for _, u := range users {
			userNames[u.ID] = u.Name
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Internal(err, "resolve bid names")
	}

	out := &Listing{Rows: make([]Row, 0, len(rows))}
	for _, r := range rows {
		r.GameName = gameNames[r.GameID]
		r.UserName = userNames[r.UserID]
		out.Rows = append(out.Rows, r)
		out.TotalAmount += r.Amount
	}
	out.Count = len(out.Rows)
	return out, nil
}

func keys(m map[uint]struct{}) []uint {
	out := make([]uint, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
