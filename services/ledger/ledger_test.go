package ledger

import (
	"context"
	"testing"

	"matka/database/dbtest"
	"matka/errs"
	"matka/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDebitAndCredit(t *testing.T) {
	db := dbtest.New(t)
	u := dbtest.User(t, db, "asha", 500)

	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := LockUser(tx, u.ID)
		require.NoError(t, err)

		trx, err := Debit(tx, user, 200, "kalyan single-digit")
		require.NoError(t, err)
		assert.Equal(t, models.TrxDebit, trx.Type)
		assert.Equal(t, int64(500), trx.BalanceBefore)
		assert.Equal(t, int64(300), trx.BalanceAfter)
		assert.NotEmpty(t, trx.RefID)

		trx, err = Credit(tx, user, 50, "refund")
		require.NoError(t, err)
		assert.Equal(t, int64(350), trx.BalanceAfter)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(350), dbtest.Balance(t, db, u.ID))
}

func TestDebitInsufficient(t *testing.T) {
	db := dbtest.New(t)
	u := dbtest.User(t, db, "ravi", 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		_, err = Debit(tx, user, 11, "too much")
		return err
	})
	assert.True(t, errs.Is(err, errs.KindBusiness))
	assert.Equal(t, int64(10), dbtest.Balance(t, db, u.ID))

	trx, _ := dbtest.Counts(t, db)
	assert.Zero(t, trx)
}

func TestForceDebitGoesNegative(t *testing.T) {
	db := dbtest.New(t)
	u := dbtest.User(t, db, "meena", 30)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		user, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		_, err = ForceDebit(tx, user, 100, "winning reversed")
		return err
	}))
	assert.Equal(t, int64(-70), dbtest.Balance(t, db, u.ID))
}

func TestPostRejectsNonPositive(t *testing.T) {
	db := dbtest.New(t)
	u := dbtest.User(t, db, "kiran", 30)

	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		_, err = Credit(tx, user, 0, "nothing")
		return err
	})
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestLockUserNotFound(t *testing.T) {
	db := dbtest.New(t)
	_, err := LockUser(db, 42)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestHistory(t *testing.T) {
	db := dbtest.New(t)
	u := dbtest.User(t, db, "asha", 100)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		user, err := LockUser(tx, u.ID)
		if err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			if _, err := Debit(tx, user, 10, "bid"); err != nil {
				return err
			}
		}
		return nil
	}))

	st, err := History(context.Background(), db, u.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(70), st.Balance)
	require.Len(t, st.Transactions, 2)
	assert.Equal(t, int64(70), st.Transactions[0].BalanceAfter, "newest first")

	_, err = History(context.Background(), db, 999, 10)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}
