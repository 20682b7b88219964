package sale

import (
	"context"
	"testing"

	"matka/database/dbtest"
	"matka/errs"
	"matka/models"
	"matka/services/bids"
	"matka/services/settlement"
	"matka/services/wager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	svc  *Service
	user *models.User
	game *models.Game
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	return &fixture{
		db:   db,
		svc:  NewService(db, dbtest.Clock()),
		user: dbtest.User(t, db, "asha", 100000),
		game: dbtest.Game(t, db, models.MarketMain, "Kalyan", "11:00 AM"),
	}
}

func (f *fixture) place(t *testing.T, reqs ...bids.WagerRequest) {
	t.Helper()
	for i := range reqs {
		reqs[i].GameID = f.game.ID
	}
	_, err := bids.NewService(f.db, dbtest.Clock()).Place(context.Background(), models.MarketMain, bids.PlaceRequest{UserID: f.user.ID, Wagers: reqs})
	require.NoError(t, err)
}

func w(gt models.GameType, amount float64, session string, fields wager.Fields) bids.WagerRequest {
	return bids.WagerRequest{GameType: gt, Amount: amount, Session: session, Fields: fields}
}

func sum(lines []Line) int64 {
	var n int64
	for _, l := range lines {
		n += l.Point
	}
	return n
}

func TestSingleDigitReport(t *testing.T) {
	f := setup(t)
	f.place(t,
		w(models.SingleDigit, 100, "open", wager.Fields{Digit: "5"}),
		w(models.SingleDigit, 50, "open", wager.Fields{Digit: "5"}),
		w(models.SingleDigit, 70, "open", wager.Fields{Digit: "2"}),
		w(models.SingleDigit, 30, "close", wager.Fields{Digit: "9"}),
	)

	out, err := f.svc.Report(context.Background(), models.MarketMain, Request{GameID: f.game.ID, GameType: "single-digit", Session: "open"})
	require.NoError(t, err)

	lines := out.Report.Lines
	require.Len(t, lines, 10)
	assert.Equal(t, Line{Key: "5", Point: 150}, lines[0])
	assert.Equal(t, Line{Key: "2", Point: 70}, lines[1])
	assert.Equal(t, Line{Key: "0", Point: 0}, lines[2], "zero keys ascend")
	assert.Equal(t, int64(220), out.Report.Total)
	assert.Equal(t, int64(220), sum(lines))
}

func TestJodiReportEnumeratesAllKeys(t *testing.T) {
	f := setup(t)
	f.place(t,
		w(models.JodiDigit, 40, "", wager.Fields{Digit: "07"}),
		w(models.JodiDigit, 60, "", wager.Fields{Digit: "99"}),
	)

	out, err := f.svc.Report(context.Background(), models.MarketMain, Request{BidDate: dbtest.Today, GameType: "jodi-digit"})
	require.NoError(t, err)

	lines := out.Report.Lines
	require.Len(t, lines, 100)
	assert.Equal(t, "99", lines[0].Key)
	assert.Equal(t, "07", lines[1].Key)
	assert.Equal(t, "00", lines[2].Key)
	assert.Equal(t, int64(100), sum(lines))
}

func TestSangamReportsOnlyNonzero(t *testing.T) {
	f := setup(t)
	f.place(t,
		w(models.HalfSangam, 10, "open", wager.Fields{Digit: "4", ClosePanna: "123"}),
		w(models.HalfSangam, 20, "close", wager.Fields{Digit: "4", OpenPanna: "120"}),
		w(models.FullSangam, 30, "", wager.Fields{OpenPanna: "120", ClosePanna: "345"}),
	)

	out, err := f.svc.Report(context.Background(), models.MarketMain, Request{GameType: "half-sangam"})
	require.NoError(t, err)
	assert.Equal(t, []Line{{Key: "120-4", Point: 20}, {Key: "4-123", Point: 10}}, out.Report.Lines)

	out, err = f.svc.Report(context.Background(), models.MarketMain, Request{GameType: "full-sangam"})
	require.NoError(t, err)
	assert.Equal(t, []Line{{Key: "120-345", Point: 30}}, out.Report.Lines)
}

func TestAllTypesMatchesWagerTotal(t *testing.T) {
	f := setup(t)
	f.place(t,
		w(models.SingleDigit, 100, "open", wager.Fields{Digit: "5"}),
		w(models.OddEven, 25, "open", wager.Fields{Digit: "1"}),
		w(models.JodiDigit, 40, "", wager.Fields{Digit: "07"}),
		w(models.SinglePanna, 15, "open", wager.Fields{Panna: "128"}),
		w(models.SPMotor, 35, "open", wager.Fields{Panna: "128"}),
		w(models.TriplePanna, 5, "open", wager.Fields{Panna: "777"}),
		w(models.FullSangam, 30, "", wager.Fields{OpenPanna: "120", ClosePanna: "345"}),
	)

	out, err := f.svc.Report(context.Background(), models.MarketMain, Request{GameID: f.game.ID, GameType: AllTypes})
	require.NoError(t, err)
	assert.Nil(t, out.Report)

	var total int64
	for _, r := range out.Reports {
		total += sum(r.Lines)
	}
	assert.Equal(t, int64(250), total)

	assert.Equal(t, int64(125), sum(out.Reports["singleDigitBid"].Lines))
	assert.Equal(t, []Line{{Key: "128", Point: 50}}, out.Reports["singlePannaBid"].Lines)
	assert.Len(t, out.Reports["jodiBid"].Lines, 100)
	assert.Empty(t, out.Reports["doublePannaBid"].Lines)
	assert.Contains(t, out.Reports, "halfSangamBid")
}

func TestReducedJodiReport(t *testing.T) {
	f := setup(t)
	dbtest.Rates(t, f.db, models.MarketMain)
	f.place(t,
		w(models.JodiDigit, 40, "", wager.Fields{Digit: "57"}),
		w(models.JodiDigit, 60, "", wager.Fields{Digit: "75"}),
	)

	engine := settlement.NewEngine(f.db, settlement.Options{Clock: dbtest.Clock()})
	_, err := engine.Declare(context.Background(), models.MarketMain, settlement.DeclareRequest{
		Declaration: settlement.Declaration{ResultDate: dbtest.Today, GameID: f.game.ID, Session: "open", Panna: "500", Digit: "5"},
	})
	require.NoError(t, err)

	out, err := f.svc.Report(context.Background(), models.MarketMain, Request{GameID: f.game.ID, GameType: "jodi-digit", Reduced: true})
	require.NoError(t, err)
	assert.True(t, out.Reduced)
	require.Len(t, out.Report.Lines, 10)
	assert.Equal(t, Line{Key: "57", Point: 40}, out.Report.Lines[0])
	for _, l := range out.Report.Lines {
		assert.Equal(t, byte('5'), l.Key[0])
	}
	require.NotNil(t, out.DeclaredDigits)
	assert.Equal(t, "5", out.DeclaredDigits.Open)

	out, err = f.svc.Report(context.Background(), models.MarketMain, Request{GameID: f.game.ID, GameType: "jodi-digit"})
	require.NoError(t, err)
	assert.False(t, out.Reduced)
	assert.Len(t, out.Report.Lines, 100)
}

func TestReducedNeedsOpenResult(t *testing.T) {
	f := setup(t)
	dbtest.Rates(t, f.db, models.MarketMain)
	f.place(t, w(models.JodiDigit, 40, "", wager.Fields{Digit: "57"}))

	engine := settlement.NewEngine(f.db, settlement.Options{Clock: dbtest.Clock()})
	_, err := engine.Declare(context.Background(), models.MarketMain, settlement.DeclareRequest{
		Declaration: settlement.Declaration{ResultDate: dbtest.Today, GameID: f.game.ID, Session: "close", Panna: "128", Digit: "1"},
	})
	require.NoError(t, err)

	out, err := f.svc.Report(context.Background(), models.MarketMain, Request{GameID: f.game.ID, GameType: "jodi-digit", Reduced: true})
	require.NoError(t, err)
	assert.False(t, out.Reduced)
	assert.Len(t, out.Report.Lines, 100)
	require.NotNil(t, out.DeclaredDigits)
	assert.Empty(t, out.DeclaredDigits.Open)
	assert.Equal(t, "1", out.DeclaredDigits.Close)
}

func TestReportValidation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Report(context.Background(), models.MarketMain, Request{GameType: "left-digit"})
	assert.True(t, errs.Is(err, errs.KindValidation))

	_, err = f.svc.Report(context.Background(), models.MarketMain, Request{GameType: "single-digit", BidDate: "32-13-2026"})
	assert.True(t, errs.Is(err, errs.KindValidation))

	_, err = f.svc.Report(context.Background(), models.MarketMain, Request{GameType: "single-digit", Session: "noon"})
	assert.True(t, errs.Is(err, errs.KindValidation))
}
