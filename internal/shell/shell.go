package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stockpoint/internal/catalog"
	"stockpoint/internal/domain"
	"stockpoint/internal/service"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrInvalidInput marks boundary-level input rejection. The catalog itself
// accepts values as given; range checks happen here, before the core is
// called.
var ErrInvalidInput = errors.New("invalid input")

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// addProductInput is the parsed add-product form.
type addProductInput struct {
	Name        string  `validate:"required"`
	Description string
	Price       float64 `validate:"gte=0"`
	Available   float64 `validate:"gte=0"`
	Minimum     float64 `validate:"gte=0"`
}

// Shell drives the interactive menu loop. It owns all text rendering and
// parsing; every menu action performs exactly one catalog or account
// operation, and after each one the catalog is swept for a low-stock
// warning.
type Shell struct {
	catalog  *catalog.Catalog
	accounts service.AccountService
	in       *bufio.Scanner
	out      io.Writer
	logger   *zap.Logger
}

// New creates a shell reading menu input from in and rendering to out.
func New(cat *catalog.Catalog, accounts service.AccountService, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	return &Shell{
		catalog:  cat,
		accounts: accounts,
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger,
	}
}

// Run blocks on the interactive loop until the user quits or input is
// exhausted. Failures are rendered and the menu re-prompts; no error is
// fatal to the loop.
func (s *Shell) Run(ctx context.Context) error {
	for {
		session, ok := s.accounts.Current()
		if !ok {
			if !s.login(ctx) {
				return nil
			}
			continue
		}

		s.printf("\nWelcome to Stockpoint\n")
		s.printf("1. Add Product\n")
		s.printf("2. Look Up Product\n")
		s.printf("3. Purchase Product\n")
		s.printf("4. Sell Product\n")
		s.printf("5. Manage Account\n")
		if session.Admin {
			s.printf("6. Add User\n")
			s.printf("7. Delete User\n")
		}
		s.printf("8. Log Out\n")
		s.printf("9. Quit\n")

		choice, ok := s.readLine("> ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			s.addProduct()
		case "2":
			s.lookUpProduct()
		case "3":
			s.purchaseProduct()
		case "4":
			s.sellProduct()
		case "5":
			s.manageAccount(ctx)
		case "6":
			s.addUser(ctx)
		case "7":
			s.deleteUser(ctx)
		case "8":
			s.accounts.Logout()
			s.printf("Logged out.\n")
		case "9":
			s.printf("Goodbye.\n")
			return nil
		default:
			s.printf("Invalid option\n")
		}

		s.warnLowStock()
	}
}

// login prompts for credentials until authentication succeeds. It reports
// false when input is exhausted. There is no lockout or backoff; a failed
// attempt simply re-prompts.
func (s *Shell) login(ctx context.Context) bool {
	for {
		s.printf("Log In\n")
		email, ok := s.readLine("Email: ")
		if !ok {
			return false
		}
		credential, ok := s.readLine("Password: ")
		if !ok {
			return false
		}

		authed, err := s.accounts.Login(ctx, email, credential)
		if err != nil {
			s.logger.Error("Login failed", zap.Error(err))
			s.printf("Could not reach the account store, try again\n")
			continue
		}
		if authed {
			return true
		}
		s.printf("Incorrect email or password\n")
	}
}

func (s *Shell) addProduct() {
	s.printf("Adding Product\n")
	name, ok := s.readLine("Name: ")
	if !ok {
		return
	}
	description, ok := s.readLine("Description: ")
	if !ok {
		return
	}
	price, ok := s.readFloat("Price: ")
	if !ok {
		return
	}
	available, ok := s.readFloat("Available quantity: ")
	if !ok {
		return
	}
	minimum, ok := s.readFloat(fmt.Sprintf("Minimum quantity of %s: ", name))
	if !ok {
		return
	}

	input := addProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		Available:   available,
		Minimum:     minimum,
	}
	if err := validate.Struct(input); err != nil {
		s.printf("%v: %v\n", ErrInvalidInput, err)
		return
	}

	s.catalog.Add(input.product())
	s.printf("Product added\n")
}

func (s *Shell) lookUpProduct() {
	s.printf("Looking Up Product\n")
	name, ok := s.readLine("Name: ")
	if !ok {
		return
	}

	p, found := s.catalog.Find(name)
	if !found {
		s.printf("Product not found\n")
		return
	}
	s.printf("Name: %s\n", p.Name)
	s.printf("Description: %s\n", p.Description)
	s.printf("Price: $%v\n", p.Price)
	s.printf("Available quantity: %v\n", p.Available)
}

func (s *Shell) purchaseProduct() {
	s.printf("Purchasing Product\n")
	name, ok := s.readLine("Name: ")
	if !ok {
		return
	}
	quantity, ok := s.readFloat("Quantity to purchase: ")
	if !ok {
		return
	}

	if err := s.catalog.Purchase(name, quantity); err != nil {
		s.renderCatalogError(err)
		return
	}
	s.printf("Purchase complete\n")
}

func (s *Shell) sellProduct() {
	s.printf("Selling Product\n")
	name, ok := s.readLine("Name: ")
	if !ok {
		return
	}
	quantity, ok := s.readFloat("Quantity to sell: ")
	if !ok {
		return
	}

	if err := s.catalog.Sell(name, quantity); err != nil {
		s.renderCatalogError(err)
		return
	}
	s.printf("Sale complete\n")
}

// manageAccount is the self-service submenu: every operation acts on the
// logged-in account.
func (s *Shell) manageAccount(ctx context.Context) {
	for {
		s.printf("\nManage Account\n")
		s.printf("1. Change Name\n")
		s.printf("2. Change Email\n")
		s.printf("3. Change Password\n")
		s.printf("4. Back to Main Menu\n")

		choice, ok := s.readLine("> ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			value, ok := s.readLine("New name: ")
			if !ok {
				return
			}
			if err := s.accounts.ChangeName(ctx, value); err != nil {
				s.renderAccountError(err)
			} else {
				s.printf("Name changed\n")
			}
		case "2":
			value, ok := s.readLine("New email: ")
			if !ok {
				return
			}
			if err := s.accounts.ChangeEmail(ctx, value); err != nil {
				s.renderAccountError(err)
			} else {
				s.printf("Email changed\n")
			}
		case "3":
			value, ok := s.readLine("New password: ")
			if !ok {
				return
			}
			if err := s.accounts.ChangeCredential(ctx, value); err != nil {
				s.renderAccountError(err)
			} else {
				s.printf("Password changed\n")
			}
		case "4":
			return
		default:
			s.printf("Invalid option\n")
		}
	}
}

func (s *Shell) addUser(ctx context.Context) {
	s.printf("Adding User\n")
	name, ok := s.readLine("Name: ")
	if !ok {
		return
	}
	email, ok := s.readLine("Email: ")
	if !ok {
		return
	}
	credential, ok := s.readLine("Password: ")
	if !ok {
		return
	}
	adminAnswer, ok := s.readLine("Administrator? (y/n): ")
	if !ok {
		return
	}
	admin := strings.EqualFold(adminAnswer, "y")

	if err := s.accounts.CreateAccount(ctx, name, email, credential, admin); err != nil {
		s.renderAccountError(err)
		return
	}
	s.printf("User added\n")
}

func (s *Shell) deleteUser(ctx context.Context) {
	s.printf("Deleting User\n")
	email, ok := s.readLine("Email: ")
	if !ok {
		return
	}

	if err := s.accounts.DeleteAccount(ctx, email); err != nil {
		s.renderAccountError(err)
		return
	}
	s.printf("User deleted\n")
}

// warnLowStock sweeps the catalog and prints at most one warning per menu
// action.
func (s *Shell) warnLowStock() {
	if name, ok := s.catalog.FirstBelowMinimum(); ok {
		s.printf("WARNING: %s has reached its minimum quantity\n", name)
	}
}

func (s *Shell) renderCatalogError(err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		s.printf("Product not found\n")
	case errors.Is(err, catalog.ErrInsufficientStock):
		s.printf("Insufficient stock available\n")
	default:
		s.printf("Error: %v\n", err)
	}
}

func (s *Shell) renderAccountError(err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		s.printf("Log in first\n")
	case errors.Is(err, service.ErrNotAdministrator):
		s.printf("Administrator privileges required\n")
	default:
		s.logger.Error("Account operation failed", zap.Error(err))
		s.printf("Error: %v\n", err)
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// readLine prompts and returns the next input line with surrounding
// whitespace trimmed. It reports false when input is exhausted.
func (s *Shell) readLine(prompt string) (string, bool) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// readFloat prompts until a line parses as a number, re-prompting on parse
// failure rather than aborting.
func (s *Shell) readFloat(prompt string) (float64, bool) {
	for {
		line, ok := s.readLine(prompt)
		if !ok {
			return 0, false
		}
		value, err := strconv.ParseFloat(line, 64)
		if err != nil {
			s.printf("Not a number, try again\n")
			continue
		}
		return value, true
	}
}

func (in addProductInput) product() domain.Product {
	return domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Available:   in.Available,
		Minimum:     in.Minimum,
	}
}
