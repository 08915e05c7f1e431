package models

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleSeller
}

type User struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"   json:"id"`
	Email    string  `gorm:"uniqueIndex;not null"       json:"email"`
	Username string  `gorm:"not null"                   json:"username"`
	Password string  `gorm:"not null"                   json:"-"`
	Role     Role    `gorm:"type:varchar(16);not null"  json:"role"`
	ShopName *string `json:"shopName"`
}

type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `gorm:"type:text"               json:"imageUrl"`
	SellerID    uint     `gorm:"index;not null"          json:"sellerId"`
	Seller      User     `gorm:"foreignKey:SellerID"     json:"seller"`
}
