package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PromotionForAll      = "all"
	PromotionForSpecific = "specific"

	DiscountTypeAmount  = "amount"
	DiscountTypePercent = "percent"

	ConditionOnce        = "Once"
	ConditionUnlimited   = "Unlimited"
	ConditionLimitPerDay = "LimitPerDay"
)

// TimeWindow is a daily redemption window. Only the time-of-day component is
// meaningful: StartTime/EndTime carry the calendar date current at store time.
type TimeWindow struct {
	StartTime time.Time `bson:"start_time" json:"start_time"`
	EndTime   time.Time `bson:"end_time" json:"end_time"`
}

type Promotion struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name              string               `bson:"name" json:"name"`
	ForCourse         string               `bson:"for_course" json:"for_course"`
	Courses           []primitive.ObjectID `bson:"courses" json:"courses"`
	Code              string               `bson:"code" json:"code"`
	Status            bool                 `bson:"status" json:"status"`
	Type              string               `bson:"type" json:"type"`
	Discount          int                  `bson:"discount" json:"discount"`
	MinPurchaseAmount int                  `bson:"min_purchase_amount" json:"min_purchase_amount"`
	MaxDiscount       int                  `bson:"max_discount" json:"max_discount"`
	ConditionType     string               `bson:"condition_type" json:"condition_type"`
	QuantityPerDay    int                  `bson:"quantity_per_day,omitempty" json:"quantity_per_day,omitempty"`
	Quantity          int                  `bson:"quantity" json:"quantity"`
	Remark            string               `bson:"remark,omitempty" json:"remark,omitempty"`
	StartDate         time.Time            `bson:"start_date" json:"start_date"`
	EndDate           time.Time            `bson:"end_date" json:"end_date"`
	Times             []TimeWindow         `bson:"times" json:"times"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}
