package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/farellandr/dataswift/internal/models"
)

func testRootAdmin() models.User {
	return models.User{
		ID:         "USR-ROOT",
		Name:       "dev team",
		Email:      "admin@dataswift.com",
		Password:   "lumen99devaccess",
		Avatar:     "https://i.pravatar.cc/150?u=devteam",
		Role:       models.RoleAdmin,
		JoinedDate: "01-Jan-2023",
	}
}

func openTestDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Blob{}))
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := openTestDB(t, filepath.Join(t.TempDir(), "test.db"))
	st, err := New(db, testRootAdmin())
	require.NoError(t, err)
	return st
}

func TestSeededDefaults(t *testing.T) {
	st := newTestStore(t)

	plans := st.Plans()
	require.Len(t, plans, 4)

	var mtn1 *models.DataPlan
	for i := range plans {
		if plans[i].Network == models.NetworkMTN && plans[i].Size == "1GB" {
			mtn1 = &plans[i]
		}
	}
	require.NotNil(t, mtn1, "seed catalog should include MTN 1GB")
	assert.Equal(t, float64(7), mtn1.Price)

	users := st.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "admin@dataswift.com", users[0].Email)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
}

func TestFindByCredentials(t *testing.T) {
	st := newTestStore(t)
	st.AddUser("Kwame Mensah", "0244123456", "", "password123")

	u, ok := st.FindByCredentials("0244123456", "password123")
	require.True(t, ok)
	assert.Equal(t, "Kwame Mensah", u.Name)

	_, ok = st.FindByCredentials("0244123456", "wrong")
	assert.False(t, ok)

	_, ok = st.FindByCredentials("0200000000", "password123")
	assert.False(t, ok)

	root, ok := st.FindByCredentials("admin@dataswift.com", "lumen99devaccess")
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, root.Role)
}

func TestSignupRolesAndIDPrefixes(t *testing.T) {
	st := newTestStore(t)

	user := st.AddUser("Abena Serwaa", "0205123456", "", "password456")
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, strings.HasPrefix(user.ID, "USR-"))

	admin := st.AddAdmin("Yaw Ofori", "yaw@dataswift.com", "secret789")
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, strings.HasPrefix(admin.ID, "ADM-"))
}

func TestAddTransactionNewestFirstAndPending(t *testing.T) {
	st := newTestStore(t)

	first := st.AddTransaction(7, "0244000000", "MTN 1GB", models.NetworkMTN)
	second := st.AddTransaction(12, "0205111111", "Telecel 1.5GB", models.NetworkTelecel)
	third := st.AddTransaction(10, "0266222222", "AT 2GB", models.NetworkAT)

	txs := st.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, third.ID, txs[0].ID)
	assert.Equal(t, second.ID, txs[1].ID)
	assert.Equal(t, first.ID, txs[2].ID)

	for _, tx := range txs {
		assert.Equal(t, models.StatusPending, tx.Status)
		assert.True(t, strings.HasPrefix(tx.ID, "TX-G"))
		assert.Equal(t, "Data", tx.Type)
	}
}

func TestBuyScenario(t *testing.T) {
	st := newTestStore(t)

	var plan models.DataPlan
	for _, p := range st.Plans() {
		if p.Network == models.NetworkMTN && p.Size == "1GB" {
			plan = p
		}
	}
	require.NotEmpty(t, plan.ID)

	tx := st.AddTransaction(plan.Price, "0244000000", plan.Label(), plan.Network)
	assert.Equal(t, float64(7), tx.Amount)
	assert.Equal(t, models.StatusPending, tx.Status)
	assert.Equal(t, "MTN 1GB", tx.Plan)
	assert.Equal(t, "0244000000", tx.Recipient)
}

func TestUpdateTransactionStatus(t *testing.T) {
	st := newTestStore(t)
	target := st.AddTransaction(7, "0244000000", "MTN 1GB", models.NetworkMTN)
	other := st.AddTransaction(40, "0205111111", "MTN 5GB", models.NetworkMTN)

	require.NoError(t, st.UpdateTransactionStatus(target.ID, models.StatusSuccess))

	updated, err := st.FindTransaction(target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, updated.Status)
	assert.Equal(t, target.Amount, updated.Amount)
	assert.Equal(t, target.Recipient, updated.Recipient)
	assert.Equal(t, target.Plan, updated.Plan)

	untouched, err := st.FindTransaction(other.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, untouched.Status)

	// Re-asserting the current status is an idempotent no-op.
	require.NoError(t, st.UpdateTransactionStatus(target.ID, models.StatusSuccess))

	// Terminal records never transition again.
	err = st.UpdateTransactionStatus(target.ID, models.StatusFailed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = st.UpdateTransactionStatus("TX-G00000", models.StatusSuccess)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogEditsNeverRewriteHistory(t *testing.T) {
	st := newTestStore(t)

	var plan models.DataPlan
	for _, p := range st.Plans() {
		if p.Network == models.NetworkMTN && p.Size == "5GB" {
			plan = p
		}
	}
	require.NotEmpty(t, plan.ID)

	tx := st.AddTransaction(plan.Price, "0244123456", plan.Label(), plan.Network)

	plan.Size = "6GB"
	plan.Price = 45
	require.NoError(t, st.UpdatePlan(plan))
	require.NoError(t, st.DeletePlan(plan.ID))

	after, err := st.FindTransaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "MTN 5GB", after.Plan)
	assert.Equal(t, float64(40), after.Amount)
	assert.Equal(t, "0244123456", after.Recipient)
}

func TestRootAdminProtection(t *testing.T) {
	st := newTestStore(t)
	root := st.Users()[0]
	staff := st.AddAdmin("Yaw Ofori", "yaw@dataswift.com", "secret789")

	assert.ErrorIs(t, st.DeleteUser(root.ID), ErrRootAdmin)

	// Another admin may not reset the root password; the root itself may.
	assert.ErrorIs(t, st.UpdateUserPassword(root.ID, "hijacked1", staff.ID), ErrRootAdmin)
	require.NoError(t, st.UpdateUserPassword(root.ID, "rotated99", root.ID))

	// Non-root staff are fair game.
	require.NoError(t, st.UpdateUserPassword(staff.ID, "reset123", root.ID))
	require.NoError(t, st.DeleteUser(staff.ID))

	// The reserved email survives arbitrary roster churn.
	st.AddAdmin("Second Admin", "second@dataswift.com", "secret000")
	found, err := st.FindUser(root.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@dataswift.com", found.Email)
}

func TestDeleteUserLeavesTransactions(t *testing.T) {
	st := newTestStore(t)
	user := st.AddUser("Kwame Mensah", "0244123456", "", "password123")
	tx := st.AddTransaction(7, "0244123456", "MTN 1GB", models.NetworkMTN)

	require.NoError(t, st.DeleteUser(user.ID))

	after, err := st.FindTransaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "0244123456", after.Recipient)
	assert.Equal(t, float64(7), after.Amount)
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.db")

	db := openTestDB(t, path)
	st, err := New(db, testRootAdmin())
	require.NoError(t, err)

	user := st.AddUser("Kwame Mensah", "0244123456", "", "password123")
	st.AddPlan(models.NetworkAT, "10GB", 35, "30 Days")
	st.AddTransaction(35, "0266222222", "AT 10GB", models.NetworkAT)
	st.AddTransaction(7, "0244000000", "MTN 1GB", models.NetworkMTN)
	st.EstablishSession(user)
	st.SetView(models.ViewHistory)

	users, plans, txs := st.Users(), st.Plans(), st.Transactions()

	reopened, err := New(openTestDB(t, path), testRootAdmin())
	require.NoError(t, err)

	assert.Equal(t, users, reopened.Users())
	assert.Equal(t, plans, reopened.Plans())
	assert.Equal(t, txs, reopened.Transactions())

	authenticated, current, view := reopened.Session()
	assert.True(t, authenticated)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, models.ViewHistory, view)
}

func TestClearSessionResetsView(t *testing.T) {
	st := newTestStore(t)
	user := st.AddUser("Kwame Mensah", "0244123456", "", "password123")

	st.EstablishSession(user)
	st.SetView(models.ViewHistory)
	st.ClearSession()

	authenticated, current, view := st.Session()
	assert.False(t, authenticated)
	assert.Nil(t, current)
	assert.Equal(t, models.ViewDashboard, view)
}
