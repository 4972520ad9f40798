package services

import (
	"context"
	"fmt"
	"strings"

	"prodx/internal/domain"
	"prodx/internal/repos"
	"prodx/internal/validate"
)

type CompanyService struct {
	Companies *repos.CompanyRepo
}

func NewCompanyService(companies *repos.CompanyRepo) *CompanyService {
	return &CompanyService{Companies: companies}
}

// CompanyInput is the create form. All fields are required.
type CompanyInput struct {
	Name          string `validate:"required,max=150"`
	Address       string `validate:"required,max=255"`
	EmailAddress  string `validate:"required,email,max=150"`
	ContactNumber string `validate:"required,phone"`
}

func (in CompanyInput) trimmed() CompanyInput {
	return CompanyInput{
		Name:          strings.TrimSpace(in.Name),
		Address:       strings.TrimSpace(in.Address),
		EmailAddress:  strings.TrimSpace(in.EmailAddress),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
	}
}

// Create validates and stores a company. Nothing is written on a
// validation failure.
func (s *CompanyService) Create(ctx context.Context, in CompanyInput) (domain.Company, error) {
	in = in.trimmed()
	if errs := validate.Struct(in); len(errs) > 0 {
		return domain.Company{}, &ValidationError{Kind: ErrInvalidCompany, Fields: errs}
	}
	c := domain.Company{Name: in.Name, Address: in.Address, EmailAddress: in.EmailAddress, ContactNumber: in.ContactNumber}
	id, err := s.Companies.Create(ctx, c)
	if err != nil {
		return domain.Company{}, fmt.Errorf("create company: %w", err)
	}
	c.ID = id
	return c, nil
}

// Delete removes a company. Unknown ids are not an error.
func (s *CompanyService) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("%w: id %d", ErrInvalidCompany, id)
	}
	return s.Companies.Delete(ctx, id)
}

func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.Companies.List(ctx)
}
