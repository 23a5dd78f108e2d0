package library

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// DataSource is the backend as the client sees it. Every call carries the
// session explicitly.
type DataSource interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Register(ctx context.Context, email, password string) error
	Books(ctx context.Context, s Session) ([]BookRecord, error)
	Categories(ctx context.Context, s Session) ([]Category, error)
	Borrow(ctx context.Context, s Session, bookID int64, days int) (LoanRecord, error)
	MyLoans(ctx context.Context, s Session) ([]LoanRecord, error)
	ReturnLoan(ctx context.Context, s Session, loanID int64) (LoanRecord, error)
	Profile(ctx context.Context, s Session) (Profile, error)
	UpdateProfile(ctx context.Context, s Session, form ProfileForm) (Profile, error)
	Users(ctx context.Context, s Session) ([]User, error)
	CreateUser(ctx context.Context, s Session, form CreateUserForm) (User, error)
	DeleteUser(ctx context.Context, s Session, id int64) error
}

// UnavailableError reports a collection that could not be fetched. It
// matches ErrDataUnavailable and still unwraps to the transport error.
type UnavailableError struct {
	What string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.What, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrDataUnavailable }

// Options tunes a LibraryManager.
type Options struct {
	Policy            Policy
	DefaultBorrowDays int
	MaxBorrowDays     int
}

// DefaultOptions mirrors the backend defaults: 14-day loans, at most 30.
func DefaultOptions() Options {
	return Options{Policy: DefaultPolicy(), DefaultBorrowDays: 14, MaxBorrowDays: 30}
}

// Books is a catalog plus where it came from.
type Books struct {
	Records   []BookRecord
	FetchedAt time.Time
	// Stale is set when Records come from the local snapshot.
	Stale bool
}

// Loans is a borrowing history plus where it came from.
type Loans struct {
	Records   []LoanRecord
	FetchedAt time.Time
	Stale     bool
}

// LibraryManager is a thin façade over the backend, the local store and the
// classification engine, keeping CLI code simple.
type LibraryManager struct {
	src        DataSource
	db         *Database
	classifier *Classifier
	opts       Options
	session    Session
}

// NewLibraryManager opens (or creates) the local store at dbPath and restores
// the saved session.
func NewLibraryManager(dbPath string, src DataSource, opts Options) (*LibraryManager, error) {
	db, err := NewDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	session, err := db.LoadSession()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &LibraryManager{
		src:        src,
		db:         db,
		classifier: NewClassifier(opts.Policy),
		opts:       opts,
		session:    session,
	}, nil
}

// Close closes the underlying database.
func (lm *LibraryManager) Close() error { return lm.db.Close() }

func (lm *LibraryManager) Session() Session { return lm.session }

func (lm *LibraryManager) Classifier() *Classifier { return lm.classifier }

func (lm *LibraryManager) requireLogin() error {
	if lm.session.IsGuest() {
		return ErrNotLoggedIn
	}
	return nil
}

func (lm *LibraryManager) requireAdmin() error {
	if err := lm.requireLogin(); err != nil {
		return err
	}
	if !lm.session.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// ------------------ Session ------------------

// Login authenticates and persists the session for later runs.
func (lm *LibraryManager) Login(ctx context.Context, form LoginForm) (Session, error) {
	form.Email = NormalizeEmail(form.Email)
	if err := ValidateForm(form); err != nil {
		return Session{}, err
	}
	s, err := lm.src.Login(ctx, form.Email, form.Password)
	if err != nil {
		return Session{}, err
	}
	if s.IsGuest() {
		return Session{}, errors.New("login returned no session token")
	}
	if s.Email == "" {
		s.Email = form.Email
	}
	if err := lm.db.SaveSession(s); err != nil {
		return Session{}, err
	}
	lm.session = s
	return s, nil
}

// Register creates an account. It does not sign in; the user logs in next.
func (lm *LibraryManager) Register(ctx context.Context, form RegisterForm) error {
	form.Email = NormalizeEmail(form.Email)
	if err := ValidateForm(form); err != nil {
		return err
	}
	return lm.src.Register(ctx, form.Email, form.Password)
}

// Logout forgets the stored credentials and the user's cached loans.
func (lm *LibraryManager) Logout() error {
	if err := lm.db.ClearSession(); err != nil {
		return err
	}
	lm.session = GuestSession()
	return nil
}

// ------------------ Catalog ------------------

// Catalog fetches every book. With offline set it reads the last snapshot
// instead. A failed fetch never falls back on its own.
func (lm *LibraryManager) Catalog(ctx context.Context, offline bool) (Books, error) {
	if offline {
		var records []BookRecord
		at, err := lm.db.LoadSnapshot(SnapshotCatalog, &records)
		if err != nil {
			return Books{}, err
		}
		return Books{Records: records, FetchedAt: at, Stale: true}, nil
	}

	records, err := lm.src.Books(ctx, lm.session)
	if err != nil {
		return Books{}, &UnavailableError{What: "catalog", Err: err}
	}
	for _, b := range records {
		if err := ValidateBook(b); err != nil {
			return Books{}, err
		}
	}
	now := time.Now()
	if err := lm.db.SaveSnapshot(SnapshotCatalog, records, now); err != nil {
		return Books{}, err
	}
	return Books{Records: records, FetchedAt: now}, nil
}

// SearchCatalog loads the catalog and applies spec to it.
func (lm *LibraryManager) SearchCatalog(ctx context.Context, spec FilterSpec, offline bool) (Books, error) {
	books, err := lm.Catalog(ctx, offline)
	if err != nil {
		return Books{}, err
	}
	books.Records = FilterCatalog(books.Records, spec)
	return books, nil
}

func (lm *LibraryManager) Categories(ctx context.Context) ([]Category, error) {
	cats, err := lm.src.Categories(ctx, lm.session)
	if err != nil {
		return nil, &UnavailableError{What: "categories", Err: err}
	}
	return cats, nil
}

// ------------------ Circulation ------------------

// BorrowBook borrows bookID for days (0 means the default loan length). The
// book must be in the current catalog with a copy available.
func (lm *LibraryManager) BorrowBook(ctx context.Context, bookID int64, days int) (LoanRecord, error) {
	if err := lm.requireLogin(); err != nil {
		return LoanRecord{}, err
	}
	if days == 0 {
		days = lm.opts.DefaultBorrowDays
	}
	if days < 1 || days > lm.opts.MaxBorrowDays {
		return LoanRecord{}, &FormError{Fields: map[string]string{
			"borrowDays": fmt.Sprintf("must be between 1 and %d", lm.opts.MaxBorrowDays),
		}}
	}

	books, err := lm.Catalog(ctx, false)
	if err != nil {
		return LoanRecord{}, err
	}
	book, ok := FindBook(books.Records, bookID)
	if !ok {
		return LoanRecord{}, errors.Wrapf(ErrNotFound, "book %d", bookID)
	}
	if !book.Available() {
		return LoanRecord{}, errors.Errorf("%q has no copies available", book.Title)
	}

	return lm.src.Borrow(ctx, lm.session, bookID, days)
}

func (lm *LibraryManager) ReturnBook(ctx context.Context, loanID int64) (LoanRecord, error) {
	if err := lm.requireLogin(); err != nil {
		return LoanRecord{}, err
	}
	return lm.src.ReturnLoan(ctx, lm.session, loanID)
}

// ------------------ Borrowing history ------------------

// Loans fetches the signed-in user's borrowing history, or reads its last
// snapshot when offline is set.
func (lm *LibraryManager) Loans(ctx context.Context, offline bool) (Loans, error) {
	if err := lm.requireLogin(); err != nil {
		return Loans{}, err
	}
	kind := LoansSnapshot(lm.session.Email)

	if offline {
		var records []LoanRecord
		at, err := lm.db.LoadSnapshot(kind, &records)
		if err != nil {
			return Loans{}, err
		}
		return Loans{Records: records, FetchedAt: at, Stale: true}, nil
	}

	records, err := lm.src.MyLoans(ctx, lm.session)
	if err != nil {
		return Loans{}, &UnavailableError{What: "borrowings", Err: err}
	}
	for _, l := range records {
		if err := ValidateLoan(l); err != nil {
			return Loans{}, err
		}
	}
	now := time.Now()
	if err := lm.db.SaveSnapshot(kind, records, now); err != nil {
		return Loans{}, err
	}
	return Loans{Records: records, FetchedAt: now}, nil
}

// Borrowings classifies the history at now and keeps the loans on tab.
func (lm *LibraryManager) Borrowings(ctx context.Context, now time.Time, tab LoanTab, offline bool) ([]LoanView, Loans, error) {
	loans, err := lm.Loans(ctx, offline)
	if err != nil {
		return nil, Loans{}, err
	}
	views, err := lm.classifier.FilterLoans(loans.Records, now, tab)
	if err != nil {
		return nil, Loans{}, err
	}
	return views, loans, nil
}

// Statistics summarises the history at now.
func (lm *LibraryManager) Statistics(ctx context.Context, now time.Time, offline bool) (Summary, Loans, error) {
	loans, err := lm.Loans(ctx, offline)
	if err != nil {
		return Summary{}, Loans{}, err
	}
	s, err := lm.classifier.Summarize(loans.Records, now)
	if err != nil {
		return Summary{}, Loans{}, err
	}
	return s, loans, nil
}

// ------------------ Profile ------------------

func (lm *LibraryManager) Profile(ctx context.Context) (Profile, error) {
	if err := lm.requireLogin(); err != nil {
		return Profile{}, err
	}
	p, err := lm.src.Profile(ctx, lm.session)
	if err != nil {
		return Profile{}, &UnavailableError{What: "profile", Err: err}
	}
	return p, nil
}

func (lm *LibraryManager) UpdateProfile(ctx context.Context, form ProfileForm) (Profile, error) {
	if err := lm.requireLogin(); err != nil {
		return Profile{}, err
	}
	if err := ValidateForm(form); err != nil {
		return Profile{}, err
	}
	return lm.src.UpdateProfile(ctx, lm.session, form)
}

// ------------------ User administration ------------------

func (lm *LibraryManager) Users(ctx context.Context) ([]User, error) {
	if err := lm.requireAdmin(); err != nil {
		return nil, err
	}
	users, err := lm.src.Users(ctx, lm.session)
	if err != nil {
		return nil, &UnavailableError{What: "users", Err: err}
	}
	return users, nil
}

func (lm *LibraryManager) CreateUser(ctx context.Context, form CreateUserForm) (User, error) {
	if err := lm.requireAdmin(); err != nil {
		return User{}, err
	}
	form.Email = NormalizeEmail(form.Email)
	if err := ValidateForm(form); err != nil {
		return User{}, err
	}
	return lm.src.CreateUser(ctx, lm.session, form)
}

func (lm *LibraryManager) DeleteUser(ctx context.Context, id int64) error {
	if err := lm.requireAdmin(); err != nil {
		return err
	}
	return lm.src.DeleteUser(ctx, lm.session, id)
}
