package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerLoyalty tracks the rolling pizza counter for one customer.
// The counter always sits below the reward threshold; crossing it
// converts whole multiples into a reward and keeps the remainder.
type CustomerLoyalty struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID        uuid.UUID  `gorm:"column:customer_id;type:uuid;not null;uniqueIndex"`
	PizzaCounter      int        `gorm:"column:pizza_counter;not null;default:0"`
	LifetimePizzas    int        `gorm:"column:lifetime_pizzas;not null;default:0"`
	RewardsEarned     int        `gorm:"column:rewards_earned;not null;default:0"`
	LastRewardEarnedAt *time.Time `gorm:"column:last_reward_earned_at"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (CustomerLoyalty) TableName() string { return "customer_loyalty" }
