package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Trottiparts API ❤️. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password

CATALOG
- GET "/part" - List parts (search, category, brand, scooterModelId filters)
- GET "/part/:id" - Get part by ID
- GET "/category" - List categories
- GET "/brand" - List brands
- GET "/scooter" - List scooter models
- GET "/scooter/:id" - Get scooter model by ID
- GET "/scooter/:id/parts" - List parts compatible with a scooter model

GARAGE (authenticated)
- POST "/garage" - Add a scooter to my garage
- GET "/garage" - List my garage
- DELETE "/garage/:id" - Remove a scooter from my garage

TUTORIALS
- GET "/tutorial" - List published tutorials
- GET "/tutorial/:slug" - Get tutorial by slug

CART
- POST "/cart/:userId" - Add item to cart
- GET "/cart/:userId" - Get cart
- PATCH "/cart-item/:itemId" - Update item quantity
- DELETE "/cart-item/:itemId" - Remove item
- DELETE "/cart/:userId" - Clear cart

CHECKOUT & ORDERS
- GET "/delivery-methods" - Delivery fee table
- POST "/checkout" - Validate cart, create order, start hosted payment
- POST "/order" - Create order (authenticated, synchronous)
- GET "/user/:userId/orders" - Get orders for a specific user
- GET "/order/:orderId" - Get order by ID
- POST "/webhook/payment" - Payment provider webhook (signed)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
