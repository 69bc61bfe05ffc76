package validation

import (
	"math"

	validatorv10 "github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// tolerance for floating point comparison (in cents)
const amountTolerance = 0.01

// New returns a configured validator with custom validations registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// `objectid` validates a 24-char hex document id.
	_ = v.RegisterValidation("objectid", func(fl validatorv10.FieldLevel) bool {
		_, err := primitive.ObjectIDFromHex(fl.Field().String())
		return err == nil
	})

	// struct-level validation for CreateOrderRequest: each item's totalPrice
	// must match price * quantity within a cent.
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})

	return v
}

func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)

	for _, it := range req.Items {
		want := float64(it.Quantity) * it.Price
		if math.Abs(want-it.TotalPrice) > amountTolerance {
			sl.ReportError(it.TotalPrice, "TotalPrice", "totalPrice", "linetotal", "")
			return
		}
	}
}
