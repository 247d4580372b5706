package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romilkhanna/turing-backend/middlewares"
	"github.com/romilkhanna/turing-backend/models"
	"github.com/romilkhanna/turing-backend/services"
)

type CustomerManager interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetCustomer(ctx context.Context, customerID int) (*models.Customer, error)
	UpdateAddress(ctx context.Context, customerID int, address models.Address) (*models.Customer, error)
}

type CustomerController struct {
	customers CustomerManager
}

func NewCustomerController(customers CustomerManager) *CustomerController {
	return &CustomerController{customers: customers}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type addressRequest struct {
	Address1         string `json:"address_1" binding:"required"`
	Address2         string `json:"address_2"`
	City             string `json:"city" binding:"required"`
	Region           string `json:"region" binding:"required"`
	PostalCode       string `json:"postal_code" binding:"required"`
	Country          string `json:"country" binding:"required"`
	ShippingRegionID int    `json:"shipping_region_id" binding:"required,min=1"`
}

type authResponse struct {
	Customer    *models.Customer `json:"customer"`
	AccessToken string           `json:"accessToken"`
	ExpiresIn   string           `json:"expires_in"`
}

func newAuthResponse(res *services.AuthResult) authResponse {
	return authResponse{
		Customer:    res.Customer,
		AccessToken: "Bearer " + res.AccessToken,
		ExpiresIn:   formatTTL(res.ExpiresIn),
	}
}

func (cc *CustomerController) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	res, err := cc.customers.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newAuthResponse(res))
}

func (cc *CustomerController) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	res, err := cc.customers.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAuthResponse(res))
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	customerID, err := middlewares.CustomerID(c)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	customer, err := cc.customers.GetCustomer(c.Request.Context(), customerID)
	respond(c, customer, err)
}

func (cc *CustomerController) UpdateAddress(c *gin.Context) {
	customerID, err := middlewares.CustomerID(c)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	var req addressRequest
	if err := bindJSON(c, &req); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	customer, err := cc.customers.UpdateAddress(c.Request.Context(), customerID, models.Address{
		Address1:         req.Address1,
		Address2:         req.Address2,
		City:             req.City,
		Region:           req.Region,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		ShippingRegionID: req.ShippingRegionID,
	})
	respond(c, customer, err)
}
