package utils

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	godotenv.Load()
}

func AdminKey() string {
	return os.Getenv("ADMIN_KEY")
}

// ContactFeeCents is the price of one contact-detail request.
func ContactFeeCents() int {
	fee, err := strconv.Atoi(os.Getenv("CONTACT_FEE_CENTS"))
	if err != nil || fee <= 0 {
		return 500 // default $5
	}
	return fee
}
