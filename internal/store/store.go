package store

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/farellandr/dataswift/internal/helpers"
	"github.com/farellandr/dataswift/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrInvalidTransition indicates an attempt to move a transaction out of a
// terminal status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrRootAdmin indicates an attempt to delete the root administrator or to
// reset its password from another account.
var ErrRootAdmin = errors.New("root admin record is protected")

// Store owns the three record collections and the session slots. It is the
// single writer for all application state; every mutation happens under one
// mutex and mirrors the changed slot to the blob table.
type Store struct {
	mu sync.Mutex
	db *gorm.DB

	rootAdmin models.User

	users        []models.User
	plans        []models.DataPlan
	transactions []models.Transaction

	authenticated bool
	currentUser   *models.User
	currentView   models.View
}

// DefaultPlans is the catalog seeded when the plans slot has never been
// written.
func DefaultPlans() []models.DataPlan {
	return []models.DataPlan{
		{ID: helpers.NewPlanID(), Network: models.NetworkMTN, Size: "1GB", Price: 7, Validity: "30 Days"},
		{ID: helpers.NewPlanID(), Network: models.NetworkMTN, Size: "5GB", Price: 40, Validity: "30 Days"},
		{ID: helpers.NewPlanID(), Network: models.NetworkTelecel, Size: "1.5GB", Price: 12, Validity: "30 Days"},
		{ID: helpers.NewPlanID(), Network: models.NetworkAT, Size: "2GB", Price: 10, Validity: "30 Days"},
	}
}

// New loads all six slots, falling back to defaults for any slot that was
// never written, and guarantees the root administrator record is present in
// the user collection.
func New(db *gorm.DB, rootAdmin models.User) (*Store, error) {
	s := &Store{
		db:          db,
		rootAdmin:   rootAdmin,
		currentView: models.ViewDashboard,
	}

	if _, err := loadBlob(db, keyUsers, &s.users); err != nil {
		return nil, err
	}
	if !hasEmail(s.users, rootAdmin.Email) {
		s.users = append([]models.User{rootAdmin}, s.users...)
		saveBlob(db, keyUsers, s.users)
	}

	found, err := loadBlob(db, keyPlans, &s.plans)
	if err != nil {
		return nil, err
	}
	if !found {
		s.plans = DefaultPlans()
		saveBlob(db, keyPlans, s.plans)
	}

	if _, err = loadBlob(db, keyTransactions, &s.transactions); err != nil {
		return nil, err
	}
	if _, err = loadBlob(db, keyAuthenticated, &s.authenticated); err != nil {
		return nil, err
	}
	if _, err = loadBlob(db, keyCurrentUser, &s.currentUser); err != nil {
		return nil, err
	}
	if found, err = loadBlob(db, keyCurrentView, &s.currentView); err != nil {
		return nil, err
	} else if !found || !s.currentView.Valid() {
		s.currentView = models.ViewDashboard
	}

	return s, nil
}

func hasEmail(users []models.User, email string) bool {
	for _, u := range users {
		if u.Email == email {
			return true
		}
	}
	return false
}

func avatarURL(identifier string) string {
	return "https://i.pravatar.cc/150?u=" + identifier
}

func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...)
}

func (s *Store) Plans() []models.DataPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.DataPlan(nil), s.plans...)
}

func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transaction(nil), s.transactions...)
}

func (s *Store) FindUser(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// FindByCredentials resolves a login attempt: the identifier must equal the
// record's phone or email and the password must match exactly.
func (s *Store) FindByCredentials(identifier, password string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if (u.Phone == identifier || u.Email == identifier) && u.Password == password {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) FindPlan(id string) (models.DataPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return models.DataPlan{}, ErrNotFound
}

func (s *Store) FindTransaction(id string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return models.Transaction{}, ErrNotFound
}

// AddUser appends a self-signed-up account. Self-signup always yields the
// user role; staff accounts only come from AddAdmin.
func (s *Store) AddUser(name, phone, email, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := models.User{
		ID:         helpers.NewUserID(),
		Name:       name,
		Phone:      phone,
		Email:      email,
		Password:   password,
		Role:       models.RoleUser,
		JoinedDate: time.Now().Format("02-Jan-2006"),
	}
	user.Avatar = avatarURL(user.Identifier())
	s.users = append(s.users, user)
	saveBlob(s.db, keyUsers, s.users)
	return user
}

func (s *Store) AddAdmin(name, email, password string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin := models.User{
		ID:         helpers.NewAdminID(),
		Name:       name,
		Email:      email,
		Password:   password,
		Avatar:     avatarURL(email),
		Role:       models.RoleAdmin,
		JoinedDate: time.Now().Format("02-Jan-2006"),
	}
	s.users = append(s.users, admin)
	saveBlob(s.db, keyUsers, s.users)
	return admin
}

// DeleteUser removes a record permanently. The root administrator cannot be
// removed, enforced here rather than in the presentation layer.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID != id {
			continue
		}
		if u.Email != "" && u.Email == s.rootAdmin.Email {
			return ErrRootAdmin
		}
		s.users = append(s.users[:i], s.users[i+1:]...)
		saveBlob(s.db, keyUsers, s.users)
		return nil
	}
	return ErrNotFound
}

// UpdateUserPassword replaces one record's password. The root
// administrator's password only changes when the actor is the root
// administrator itself.
func (s *Store) UpdateUserPassword(id, newPassword, actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID != id {
			continue
		}
		if u.Email != "" && u.Email == s.rootAdmin.Email && actorID != u.ID {
			return ErrRootAdmin
		}
		s.users[i].Password = newPassword
		saveBlob(s.db, keyUsers, s.users)
		if s.currentUser != nil && s.currentUser.ID == id {
			updated := s.users[i]
			s.currentUser = &updated
			saveBlob(s.db, keyCurrentUser, s.currentUser)
		}
		return nil
	}
	return ErrNotFound
}

func (s *Store) AddPlan(network models.Network, size string, price float64, validity string) models.DataPlan {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := models.DataPlan{
		ID:       helpers.NewPlanID(),
		Network:  network,
		Size:     size,
		Price:    price,
		Validity: validity,
	}
	s.plans = append(s.plans, plan)
	saveBlob(s.db, keyPlans, s.plans)
	return plan
}

func (s *Store) UpdatePlan(plan models.DataPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.plans {
		if p.ID == plan.ID {
			s.plans[i] = plan
			saveBlob(s.db, keyPlans, s.plans)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeletePlan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.plans {
		if p.ID == id {
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			saveBlob(s.db, keyPlans, s.plans)
			return nil
		}
	}
	return ErrNotFound
}

// AddTransaction records a new order at the front of the sequence, so the
// collection stays newest-first by construction. Orders always start
// Pending; an admin reconciles them later.
func (s *Store) AddTransaction(amount float64, recipient, planLabel string, network models.Network) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := models.Transaction{
		ID:        helpers.NewTransactionID(),
		Type:      "Data",
		Amount:    amount,
		Status:    models.StatusPending,
		Date:      time.Now().Format("02-01-2006"),
		Recipient: recipient,
		Plan:      planLabel,
		Network:   network,
	}
	s.transactions = append([]models.Transaction{tx}, s.transactions...)
	saveBlob(s.db, keyTransactions, s.transactions)
	return tx
}

// UpdateTransactionStatus moves one order through the Pending ->
// Success/Failed state machine. Re-asserting the current status is a no-op;
// any other move out of a terminal status fails with ErrInvalidTransition.
func (s *Store) UpdateTransactionStatus(id string, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.transactions {
		if tx.ID != id {
			continue
		}
		if tx.Status == status {
			return nil
		}
		if !tx.Status.CanTransition(status) {
			return ErrInvalidTransition
		}
		s.transactions[i].Status = status
		saveBlob(s.db, keyTransactions, s.transactions)
		return nil
	}
	return ErrNotFound
}

// EstablishSession marks the principal authenticated and resets the view to
// the dashboard. Sessions have no expiry; they last until ClearSession.
func (s *Store) EstablishSession(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = true
	s.currentUser = &user
	s.currentView = models.ViewDashboard
	saveBlob(s.db, keyAuthenticated, s.authenticated)
	saveBlob(s.db, keyCurrentUser, s.currentUser)
	saveBlob(s.db, keyCurrentView, s.currentView)
}

func (s *Store) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = false
	s.currentUser = nil
	s.currentView = models.ViewDashboard
	saveBlob(s.db, keyAuthenticated, s.authenticated)
	saveBlob(s.db, keyCurrentUser, s.currentUser)
	saveBlob(s.db, keyCurrentView, s.currentView)
}

func (s *Store) SetView(view models.View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentView = view
	saveBlob(s.db, keyCurrentView, s.currentView)
}

// Session returns the persisted session snapshot: authenticated flag,
// current user (nil when signed out) and last view.
func (s *Store) Session() (bool, *models.User, models.View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentUser == nil {
		return s.authenticated, nil, s.currentView
	}
	user := *s.currentUser
	return s.authenticated, &user, s.currentView
}
