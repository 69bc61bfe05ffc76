package validation

import "time"

// OrderItemRequest represents a single order line item.
type OrderItemRequest struct {
	ProductID          string  `json:"productId" validate:"required"`
	ProductName        string  `json:"productName" validate:"required"`
	Price              float64 `json:"price" validate:"required,gt=0"`
	Quantity           int     `json:"quantity" validate:"required,min=1"`
	Photo              string  `json:"photo,omitempty"`
	MarketName         string  `json:"marketName,omitempty"`
	ProductDescription string  `json:"productDescription,omitempty"`
	TotalPrice         float64 `json:"totalPrice" validate:"required,gt=0"`
}

// ContactInfoRequest carries optional delivery contact details.
type ContactInfoRequest struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

// CreateOrderRequest is the payload for POST /api/orders
type CreateOrderRequest struct {
	Email          string              `json:"email" validate:"required,email"`
	Items          []OrderItemRequest  `json:"items" validate:"required,min=1,dive"`
	Subtotal       float64             `json:"subtotal,omitempty" validate:"omitempty,gte=0"`
	DeliveryFee    float64             `json:"deliveryFee,omitempty" validate:"omitempty,gte=0"`
	TotalAmount    float64             `json:"totalAmount" validate:"required,gt=0"`
	DeliveryOption string              `json:"deliveryOption,omitempty"`
	Status         string              `json:"status,omitempty" validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
	ContactInfo    *ContactInfoRequest `json:"contactInfo,omitempty"`
	PaymentMethod  string              `json:"paymentMethod,omitempty"`
}

// PaymentDetailsRequest mirrors the paymentDetails block a client may attach
// when marking an order paid.
type PaymentDetailsRequest struct {
	PaymentID       string `json:"paymentId,omitempty"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	TransactionID   string `json:"transactionId,omitempty"`
	PaymentMethod   string `json:"paymentMethod,omitempty"`
}

// UpdateOrderRequest is the payload for PATCH /api/orders/:id
type UpdateOrderRequest struct {
	Status         string                 `json:"status,omitempty" validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
	StatusMessage  string                 `json:"statusMessage,omitempty"`
	PaymentDetails *PaymentDetailsRequest `json:"paymentDetails,omitempty"`
}

// RecordPaymentRequest is the payload for POST /payments
type RecordPaymentRequest struct {
	OrderID         string  `json:"orderId" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`
	TransactionID   string  `json:"transactionId,omitempty"`
	PaymentIntentID string  `json:"paymentIntentId,omitempty"`
	Status          string  `json:"status,omitempty"`
}

// CreateIntentRequest is the payload for POST /create-payment-intent.
// Amount is in the smallest currency unit (cents).
type CreateIntentRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// CreateUserRequest is the payload for POST /users
type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
}

// UpdateUserRoleRequest is the payload for PATCH /users/:id
type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// CreateVendorRequest is the payload for POST /vendor
type CreateVendorRequest struct {
	Email      string `json:"email" validate:"required,email"`
	ShopName   string `json:"shopName" validate:"required"`
	MarketName string `json:"marketName,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	Photo      string `json:"photo,omitempty"`
}

// CreateProductRequest is the payload for POST /products. The vendor is
// identified by vendorId or by email; one of the two is required.
type CreateProductRequest struct {
	ItemName    string     `json:"itemName" validate:"required"`
	MarketName  string     `json:"marketName" validate:"required"`
	Price       float64    `json:"price" validate:"required,gt=0"`
	Date        *time.Time `json:"date" validate:"required"`
	Category    string     `json:"category,omitempty"`
	Photo       string     `json:"photo,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	VendorID    string     `json:"vendorId,omitempty" validate:"omitempty,objectid"`
	Email       string     `json:"email,omitempty" validate:"omitempty,email"`
	VendorName  string     `json:"vendorName,omitempty"`
}

// UpdateProductRequest is the payload for PATCH /products/:id.
// All fields optional; price changes archive the previous price.
type UpdateProductRequest struct {
	ItemName    *string  `json:"itemName,omitempty"`
	MarketName  *string  `json:"marketName,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category    *string  `json:"category,omitempty"`
	Photo       *string  `json:"photo,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty"`
	UpdatedBy   string   `json:"updatedBy,omitempty"`
}

// CreateAdRequest is the payload for POST /ads
type CreateAdRequest struct {
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description,omitempty"`
	Photo          string `json:"photo,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	VendorID       string `json:"vendorId,omitempty" validate:"omitempty,objectid"`
	VendorName     string `json:"vendorName,omitempty"`
}

// UpdateAdRequest is the payload for PATCH /ads/:id
type UpdateAdRequest struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Photo          *string `json:"photo,omitempty"`
	TargetAudience *string `json:"targetAudience,omitempty"`
	Status         *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// AddCartRequest is the payload for POST /user/cart
type AddCartRequest struct {
	Email     string `json:"email" validate:"required,email"`
	ProductID string `json:"productId" validate:"required,objectid"`
	Quantity  int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

// UpdateCartRequest is the payload for PATCH /user/cart/:productId
type UpdateCartRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// EmailRequest is the payload for endpoints that take only the caller email
// in the body (cart removal, watchlist removal).
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AddWatchlistRequest is the payload for POST /user/watchlist
type AddWatchlistRequest struct {
	Email     string `json:"email" validate:"required,email"`
	ProductID string `json:"productId" validate:"required,objectid"`
}

// ReviewUserRequest identifies the review author.
type ReviewUserRequest struct {
	Name   string  `json:"name,omitempty"`
	Email  string  `json:"email" validate:"required,email"`
	Avatar *string `json:"avatar,omitempty"`
}

// CreateReviewRequest is the payload for POST /reviews/:productId
type CreateReviewRequest struct {
	Rating          int                `json:"rating" validate:"required,min=1,max=5"`
	Comment         string             `json:"comment" validate:"required"`
	PriceAssessment string             `json:"priceAssessment" validate:"required"`
	User            *ReviewUserRequest `json:"user" validate:"required"`
}

// UpdateReviewRequest is the payload for PUT /user/reviews/:id
type UpdateReviewRequest struct {
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	Comment         string `json:"comment" validate:"required"`
	PriceAssessment string `json:"priceAssessment" validate:"required"`
	ProductID       string `json:"productId,omitempty"`
}
