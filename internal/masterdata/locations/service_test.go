package locations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
)

type stubCompanies map[string]companies.Company

func (s stubCompanies) Get(_ context.Context, name string) (companies.Company, error) {
	c, ok := s[name]
	if !ok {
		return companies.Company{}, shared.ErrNotFound
	}
	return c, nil
}

type recordingRepo struct {
	created []Location
}

func (r *recordingRepo) List(context.Context, shared.ListFilters) ([]Location, error) {
	return r.created, nil
}

func (r *recordingRepo) Get(_ context.Context, name string) (Location, error) {
	for _, l := range r.created {
		if l.Name == name {
			return l, nil
		}
	}
	return Location{}, shared.ErrNotFound
}

func (r *recordingRepo) Create(_ context.Context, loc Location) (Location, error) {
	for _, l := range r.created {
		if l.Name == loc.Name {
			return Location{}, shared.ErrDuplicate
		}
	}
	r.created = append(r.created, loc)
	return loc, nil
}

func TestCreateDerivesName(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(repo, stubCompanies{"Acme": {Name: "Acme", Abbr: "AC"}})

	loc, err := svc.Create(context.Background(), LocationForm{LocationName: "Dubai", LocationNumber: "01", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "01 - Dubai - AC", loc.Name)

	loc, err = svc.Create(context.Background(), LocationForm{LocationName: "Sharjah", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Sharjah - AC", loc.Name)

	_, err = svc.Create(context.Background(), LocationForm{LocationName: "Sharjah", Company: "Acme"})
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestCreateValidates(t *testing.T) {
	svc := NewService(&recordingRepo{}, stubCompanies{})
	_, err := svc.Create(context.Background(), LocationForm{Company: "Acme"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), LocationForm{LocationName: "Dubai", Company: "Ghost"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
