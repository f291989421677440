package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"stockpoint/internal/catalog"
	"stockpoint/internal/domain"
	"stockpoint/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAccounts is an in-memory AccountService: any email with credential
// "pw1" logs in.
type stubAccounts struct {
	admin   bool
	session *service.Session
	created []string
	deleted []string
}

func (s *stubAccounts) Login(ctx context.Context, email, credential string) (bool, error) {
	if credential != "pw1" {
		return false, nil
	}
	s.session = &service.Session{Email: email, Admin: s.admin}
	return true, nil
}

func (s *stubAccounts) Logout() { s.session = nil }

func (s *stubAccounts) Current() (service.Session, bool) {
	if s.session == nil {
		return service.Session{}, false
	}
	return *s.session, true
}

func (s *stubAccounts) CreateAccount(ctx context.Context, name, email, credential string, admin bool) error {
	if s.session == nil || !s.session.Admin {
		return service.ErrNotAdministrator
	}
	s.created = append(s.created, email)
	return nil
}

func (s *stubAccounts) DeleteAccount(ctx context.Context, email string) error {
	if s.session == nil || !s.session.Admin {
		return service.ErrNotAdministrator
	}
	s.deleted = append(s.deleted, email)
	return nil
}

func (s *stubAccounts) ChangeName(ctx context.Context, newName string) error { return nil }

func (s *stubAccounts) ChangeEmail(ctx context.Context, newEmail string) error {
	if s.session == nil {
		return service.ErrNotAuthenticated
	}
	s.session.Email = newEmail
	return nil
}

func (s *stubAccounts) ChangeCredential(ctx context.Context, newCredential string) error { return nil }

func runScript(t *testing.T, cat *catalog.Catalog, accounts service.AccountService, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")

	s := New(cat, accounts, in, &out, zap.NewNop())
	require.NoError(t, s.Run(context.Background()))

	return out.String()
}

func TestLoginRetryThenSellTriggersLowStockWarning(t *testing.T) {
	out := runScript(t, catalog.New(), &stubAccounts{},
		"ana@x.com", "wrong",
		"ana@x.com", "pw1",
		"1", "Rice", "5kg bag", "10", "100", "20",
		"4", "Rice", "90",
		"9",
	)

	assert.Contains(t, out, "Incorrect email or password")
	assert.Contains(t, out, "Product added")
	assert.Contains(t, out, "Sale complete")
	assert.Contains(t, out, "WARNING: Rice has reached its minimum quantity")
	assert.Contains(t, out, "Goodbye.")
}

func TestPurchaseRepromptsOnBadNumberAndReportsMissingProduct(t *testing.T) {
	out := runScript(t, catalog.New(), &stubAccounts{},
		"ana@x.com", "pw1",
		"3", "Beans", "abc", "5",
		"9",
	)

	assert.Contains(t, out, "Not a number, try again")
	assert.Contains(t, out, "Product not found")
}

func TestAddProductRejectsNegativePrice(t *testing.T) {
	cat := catalog.New()
	out := runScript(t, cat, &stubAccounts{},
		"ana@x.com", "pw1",
		"1", "Scrap", "junk", "-5", "10", "2",
		"9",
	)

	assert.Contains(t, out, "invalid input")
	_, found := cat.Find("Scrap")
	assert.False(t, found, "rejected input must not reach the catalog")
}

func TestSellInsufficientStockIsRendered(t *testing.T) {
	cat := catalog.New()
	cat.Add(domain.Product{Name: "Rice", Available: 10, Minimum: 1})

	out := runScript(t, cat, &stubAccounts{},
		"ana@x.com", "pw1",
		"4", "Rice", "50",
		"9",
	)

	assert.Contains(t, out, "Insufficient stock available")
}

func TestAdminMenuEntriesRequireAdministrator(t *testing.T) {
	out := runScript(t, catalog.New(), &stubAccounts{admin: false},
		"ana@x.com", "pw1",
		"9",
	)
	assert.NotContains(t, out, "6. Add User")
	assert.NotContains(t, out, "7. Delete User")

	accounts := &stubAccounts{admin: true}
	out = runScript(t, catalog.New(), accounts,
		"root@x.com", "pw1",
		"6", "Bob", "bob@x.com", "pw", "n",
		"7", "bob@x.com",
		"9",
	)
	assert.Contains(t, out, "6. Add User")
	assert.Contains(t, out, "User added")
	assert.Contains(t, out, "User deleted")
	assert.Equal(t, []string{"bob@x.com"}, accounts.created)
	assert.Equal(t, []string{"bob@x.com"}, accounts.deleted)
}

func TestManageAccountSubmenuChangesEmail(t *testing.T) {
	accounts := &stubAccounts{}
	out := runScript(t, catalog.New(), accounts,
		"ana@x.com", "pw1",
		"5", "2", "ana@y.com", "4",
		"9",
	)

	assert.Contains(t, out, "Email changed")
	session, active := accounts.Current()
	require.True(t, active)
	assert.Equal(t, "ana@y.com", session.Email)
}

func TestLogoutReturnsToLoginPrompt(t *testing.T) {
	out := runScript(t, catalog.New(), &stubAccounts{},
		"ana@x.com", "pw1",
		"8",
		"ana@x.com", "pw1",
		"9",
	)

	assert.Contains(t, out, "Logged out.")
	// Two login prompts: initial and after logout.
	assert.Equal(t, 2, strings.Count(out, "Log In"))
}
