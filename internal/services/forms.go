package services

import (
	"github.com/go-playground/validator/v10"

	"uiventures-tps/internal/apiclient"
	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
)

var validate = validator.New()

const (
	msgMissingCredentials = "Please enter your email and password"
	msgMissingSignUp      = "Please fill in all fields"
	msgInvalidProduct     = "Enter valid product data"
)

// SignInForm holds the login form signals. Only presence is checked.
type SignInForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (f SignInForm) Validate() (apiclient.Credentials, error) {
	if err := validate.Struct(f); err != nil {
		return apiclient.Credentials{}, errors.ValidationWrap(err, msgMissingCredentials)
	}
	return apiclient.Credentials{Email: f.Email, Password: f.Password}, nil
}

type SignUpForm struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"required"`
	Department string `json:"department" validate:"required"`
}

func (f SignUpForm) Validate() (apiclient.Registration, error) {
	if err := validate.Struct(f); err != nil {
		return apiclient.Registration{}, errors.ValidationWrap(err, msgMissingSignUp)
	}
	return apiclient.Registration{
		Name:       f.Name,
		Email:      f.Email,
		Password:   f.Password,
		Role:       models.Role(f.Role),
		Department: f.Department,
	}, nil
}

// ProductForm holds the create-product signals. Price and stock arrive as
// whatever the number inputs produced.
type ProductForm struct {
	Name  string `json:"name"`
	Price any    `json:"price"`
	Stock any    `json:"stock"`
}

type productInput struct {
	Name  string `validate:"required"`
	Price int    `validate:"gt=0"`
	Stock int    `validate:"gt=0"`
}

// Validate checks the form and builds the request body. The description
// mirrors the name and the category is the admin's department.
func (f ProductForm) Validate(department string) (models.NewProduct, error) {
	in := productInput{
		Name:  f.Name,
		Price: ParseQuantity(f.Price),
		Stock: ParseQuantity(f.Stock),
	}
	if err := validate.Struct(in); err != nil {
		return models.NewProduct{}, errors.ValidationWrap(err, msgInvalidProduct)
	}

	return models.NewProduct{
		Name:        in.Name,
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Name,
		Category:    department,
	}, nil
}
