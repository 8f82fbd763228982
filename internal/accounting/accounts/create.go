package accounts

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/naming"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
)

// placement is where a new account lands in the hierarchy.
type placement struct {
	parent     *Account
	costCenter string
	location   string
}

// AddAccount creates an account under the node identified by in.Parent.
// Parents may be accounts, base titles, cost centers or locations; the
// latter two produce a top-level account tagged with that cost center or
// location. A non-empty idempotencyKey makes retries of the same request fail
// with ErrDuplicate instead of creating a second account.
func (s *Service) AddAccount(ctx context.Context, in AddAccountInput, idempotencyKey string) (Account, error) {
	in.Company = strings.TrimSpace(in.Company)
	in.Parent = strings.TrimSpace(in.Parent)
	in.AccountName = strings.TrimSpace(in.AccountName)
	in.AccountNumber = strings.TrimSpace(in.AccountNumber)
	in.AccountCurrency = strings.ToUpper(strings.TrimSpace(in.AccountCurrency))
	if in.Company == "" {
		return Account{}, shared.ErrCompanyRequired
	}
	if err := httpx.Validate(in); err != nil {
		return Account{}, err
	}
	if !slices.Contains(AccountTypes, in.AccountType) {
		return Account{}, shared.Invalid("Account Type " + in.AccountType + " is not supported")
	}
	if in.TaxRate != nil && (in.IsGroup || in.AccountType != AccountTypeTax) {
		return Account{}, shared.Invalid("Tax Rate is only allowed on non-group Tax accounts")
	}

	cc, err := s.CompanyContext(ctx, in.Company)
	if err != nil {
		return Account{}, err
	}
	if cc.ChildCreationBlocked() {
		return Account{}, &shared.RootCompanyError{RootCompany: cc.RootCompany}
	}

	if idempotencyKey != "" {
		if err := internalShared.ValidateIdempotencyKey(idempotencyKey); err != nil {
			return Account{}, shared.Invalid("Idempotency-Key must be 1-128 printable characters")
		}
	}

	var created Account
	err = s.store.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if idempotencyKey != "" {
			if err := tx.ClaimIdempotencyKey(ctx, idempotencyKey); err != nil {
				if errors.Is(err, internalShared.ErrIdempotencyConflict) {
					return shared.ErrDuplicate
				}
				return err
			}
		}
		place, err := resolvePlacement(ctx, tx, cc.Company, in.Parent)
		if err != nil {
			return err
		}
		acc, err := buildAccount(in, place, cc.Abbr, cc.DefaultCurrency)
		if err != nil {
			return err
		}
		if err := tx.CreateAccount(ctx, acc); err != nil {
			return err
		}
		created = acc
		return tx.RecordAudit(ctx, internalShared.AuditLog{
			ActorID:  in.ActorID,
			Company:  acc.Company,
			Action:   internalShared.AuditAccountCreate,
			Entity:   "account",
			EntityID: acc.Name,
			Meta: map[string]any{
				"parent_account":     acc.ParentAccount,
				"custom_cost_center": acc.CostCenter,
				"custom_location":    acc.Location,
				"requested_parent":   in.Parent,
			},
			At: s.now(),
		})
	})
	if err != nil {
		return Account{}, err
	}
	return created, nil
}

func resolvePlacement(ctx context.Context, repo Repository, company, parent string) (placement, error) {
	if parent == "" || parent == company {
		return placement{}, nil
	}
	acc, err := repo.GetAccount(ctx, parent)
	if err == nil {
		return placement{parent: &acc}, nil
	}
	if !errors.Is(err, shared.ErrAccountNotFound) {
		return placement{}, err
	}

	candidates := []string{naming.StripNumericPrefix(parent)}
	if candidates[0] != parent {
		candidates = append(candidates, parent)
	}
	for _, candidate := range candidates {
		tagged, err := repo.HasAccountsTagged(ctx, company, candidate, "")
		if err != nil {
			return placement{}, err
		}
		if tagged {
			return placement{costCenter: candidate}, nil
		}
		tagged, err = repo.HasAccountsTagged(ctx, company, "", candidate)
		if err != nil {
			return placement{}, err
		}
		if tagged {
			return placement{location: candidate}, nil
		}
	}

	number, name := naming.SplitTitle(parent)
	acc, err = repo.FindAccount(ctx, company, name, number)
	if err != nil {
		if errors.Is(err, shared.ErrAccountNotFound) {
			return placement{}, &shared.ParentNotFoundError{Parent: parent, Company: company}
		}
		return placement{}, err
	}
	return placement{parent: &acc}, nil
}

func buildAccount(in AddAccountInput, place placement, abbr, companyCurrency string) (Account, error) {
	acc := Account{
		Name:            naming.FormatTitle(in.AccountNumber, in.AccountName) + naming.CompanySuffix(abbr),
		AccountName:     in.AccountName,
		AccountNumber:   in.AccountNumber,
		Company:         in.Company,
		IsGroup:         in.IsGroup,
		RootType:        in.RootType,
		AccountType:     in.AccountType,
		AccountCurrency: in.AccountCurrency,
		TaxRate:         in.TaxRate,
		CostCenter:      place.costCenter,
		Location:        place.location,
	}
	if acc.AccountCurrency == "" {
		acc.AccountCurrency = companyCurrency
	}
	switch {
	case place.parent != nil:
		if !place.parent.IsGroup {
			return Account{}, shared.Invalid("Parent account " + place.parent.Name + " is not a group")
		}
		acc.ParentAccount = place.parent.Name
		if acc.RootType == "" {
			acc.RootType = place.parent.RootType
		}
		if acc.CostCenter == "" {
			acc.CostCenter = place.parent.CostCenter
		}
		if acc.Location == "" {
			acc.Location = place.parent.Location
		}
	case place.costCenter == "" && place.location == "":
		if !acc.IsGroup {
			return Account{}, shared.Invalid("Root account must be a group")
		}
		if acc.RootType == "" {
			return Account{}, shared.Invalid("Root Type is required for root accounts")
		}
	}
	return acc, nil
}
