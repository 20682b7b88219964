// Package sale aggregates staked amounts by settlement key so operators can
// see exposure before declaring a result.
package sale

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"matka/errs"
	"matka/models"
	"matka/services/calendar"
	"matka/services/rate"
	"matka/services/wager"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const AllTypes = "all"

type Request struct {
	BidDate  string `json:"bidDate"`
	GameID   uint   `json:"gameId"`
	GameType string `json:"gameType"`
	Session  string `json:"session"`
	Reduced  bool   `json:"reduced"`
}

type Line struct {
	Key   string `json:"key"`
	Point int64  `json:"point"`
}

type Report struct {
	Lines []Line `json:"lines"`
	Total int64  `json:"total"`
}

type DeclaredDigits struct {
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
	Jodi  string `json:"jodi,omitempty"`
}

type Sale struct {
	GameType string `json:"gameType"`
	Date     string `json:"date"`
	// Report is set for a single game type, Reports for "all".
	Report         *Report            `json:"report,omitempty"`
	Reports        map[string]*Report `json:"reports,omitempty"`
	Reduced        bool               `json:"reduced"`
	DeclaredDigits *DeclaredDigits    `json:"declaredDigits,omitempty"`
}

var reportNames = map[models.RateFamily]string{
	models.FamilySingleDigit: "singleDigitBid",
	models.FamilyJodi:        "jodiBid",
	models.FamilySinglePanna: "singlePannaBid",
	models.FamilyDoublePanna: "doublePannaBid",
	models.FamilyTriplePanna: "triplePannaBid",
	models.FamilyHalfSangam:  "halfSangamBid",
	models.FamilyFullSangam:  "fullSangamBid",
}

type Service struct {
	db    *gorm.DB
	clock calendar.Clock
}

func NewService(db *gorm.DB, clock calendar.Clock) *Service {
	return &Service{db: db, clock: clock}
}

// query is the shared filter of every report in one request.
type query struct {
	market  models.Market
	start   time.Time
	end     time.Time
	gameID  uint
	session models.Session
}

func (s *Service) Report(ctx context.Context, market models.Market, req Request) (*Sale, error) {
	if req.BidDate == "" {
		req.BidDate = s.clock.Today()
	}
	start, end, err := s.clock.DayBounds(req.BidDate)
	if err != nil {
		return nil, errs.Validation("bidDate must be DD-MM-YYYY")
	}
	q := query{market: market, start: start, end: end, gameID: req.GameID}
	if req.Session != "" {
		sess, ok := models.ParseSession(req.Session)
		if !ok {
			return nil, errs.Validation("session must be open or close")
		}
		q.session = sess
	}

	out := &Sale{GameType: req.GameType, Date: start.Format(calendar.DateLayout)}
	digits, err := s.declaredDigits(ctx, market, out.Date, req.GameID)
	if err != nil {
		return nil, err
	}
	out.DeclaredDigits = digits

	openDigit := ""
	if req.Reduced && digits != nil {
		openDigit = digits.Open
	}

	if req.GameType == AllTypes {
		groups := familyGroups(market)
		reports := make([]*Report, len(groups))
		g, gctx := errgroup.WithContext(ctx)
		for i, grp := range groups {
			g.Go(func() error {
				r, err := s.build(gctx, q, grp.types)
				if err != nil {
					return err
				}
				reports[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, errs.Internal(err, "build sale report")
		}

		out.Reports = make(map[string]*Report, len(groups))
		for i, grp := range groups {
			if grp.family == models.FamilyJodi && openDigit != "" {
				reports[i] = reduce(reports[i], openDigit)
				out.Reduced = true
			}
			out.Reports[reportNames[grp.family]] = reports[i]
		}
		return out, nil
	}

	gt := models.GameType(req.GameType)
	if !market.Allows(gt) {
		return nil, errs.Validation("game type %q is not offered in this market", req.GameType)
	}
	r, err := s.build(ctx, q, []models.GameType{gt})
	if err != nil {
		return nil, errs.Internal(err, "build sale report")
	}
	if wager.ShapeOf(gt) == wager.ShapeJodi && openDigit != "" {
		r = reduce(r, openDigit)
		out.Reduced = true
	}
	out.Report = r
	return out, nil
}

type familyGroup struct {
	family models.RateFamily
	types  []models.GameType
}

func familyGroups(market models.Market) []familyGroup {
	var groups []familyGroup
	index := map[models.RateFamily]int{}
	for _, gt := range market.GameTypes() {
		f, ok := rate.Family(gt)
		if !ok {
			continue
		}
		i, seen := index[f]
		if !seen {
			i = len(groups)
			index[f] = i
			groups = append(groups, familyGroup{family: f})
		}
		groups[i].types = append(groups[i].types, gt)
	}
	return groups
}

func (s *Service) build(ctx context.Context, q query, types []models.GameType) (*Report, error) {
	tx := s.db.WithContext(ctx).Table("wagers").
		Select("wagers.game_type, wagers.session, wagers.digit, wagers.panna, wagers.open_panna, wagers.close_panna, wagers.amount").
		Joins("JOIN bids ON bids.id = wagers.bid_id AND bids.deleted_at IS NULL").
		Where("bids.market = ? AND bids.created_at >= ? AND bids.created_at < ?", q.market, q.start.UTC(), q.end.UTC()).
		Where("wagers.game_type IN ?", types)
	if q.gameID != 0 {
		tx = tx.Where("wagers.game_id = ?", q.gameID)
	}
	if q.session != models.SessionNone {
		tx = tx.Where("wagers.session IN ?", []models.Session{q.session, models.SessionNone})
	}

	var rows []models.Wager
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}

	sums := map[string]int64{}
	for i := range rows {
		sums[keyOf(&rows[i])] += rows[i].Amount
	}
	return emit(wager.ShapeOf(types[0]), sums), nil
}

func keyOf(w *models.Wager) string {
	p, err := wager.FromModel(w)
	if err != nil {
		var parts []string
		for _, v := range []string{w.Digit, w.Panna, w.OpenPanna, w.ClosePanna} {
			if v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, "-")
	}
	return p.Key(w.Session)
}

// emit lists every key of enumerable shapes and only nonzero keys otherwise.
func emit(shape wager.Shape, sums map[string]int64) *Report {
	switch shape {
	case wager.ShapeDigit:
		for d := 0; d < 10; d++ {
			sums[fmt.Sprintf("%d", d)] += 0
		}
	case wager.ShapeJodi:
		for d := 0; d < 100; d++ {
			sums[fmt.Sprintf("%02d", d)] += 0
		}
	}

	enumerable := shape == wager.ShapeDigit || shape == wager.ShapeJodi
	r := &Report{Lines: make([]Line, 0, len(sums))}
	for k, v := range sums {
		if v == 0 && !enumerable {
			continue
		}
		r.Lines = append(r.Lines, Line{Key: k, Point: v})
		r.Total += v
	}
	sortLines(r.Lines)
	return r
}

func sortLines(lines []Line) {
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Point != lines[j].Point {
			return lines[i].Point > lines[j].Point
		}
		return lines[i].Key < lines[j].Key
	})
}

// reduce keeps the ten jodis that start with the declared open digit.
func reduce(r *Report, openDigit string) *Report {
	out := &Report{Lines: make([]Line, 0, 10)}
	for _, l := range r.Lines {
		if strings.HasPrefix(l.Key, openDigit) && len(l.Key) == 2 {
			out.Lines = append(out.Lines, l)
			out.Total += l.Point
		}
	}
	return out
}

func (s *Service) declaredDigits(ctx context.Context, market models.Market, date string, gameID uint) (*DeclaredDigits, error) {
	if gameID == 0 {
		return nil, nil
	}
	var results []models.Result
	if err := s.db.WithContext(ctx).
		Where("market = ? AND date = ? AND game_id = ?", market, date, gameID).
		Find(&results).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Internal(err, "load declared results")
	}
	if len(results) == 0 {
		return nil, nil
	}

	d := &DeclaredDigits{}
	for _, r := range results {
		switch r.Session {
		case models.SessionOpen:
			d.Open = r.Digit
		case models.SessionClose:
			d.Close = r.Digit
		default:
			d.Jodi = r.Digit
		}
	}
	if d.Open != "" && d.Close != "" {
		d.Jodi = d.Open + d.Close
	}
	return d, nil
}
