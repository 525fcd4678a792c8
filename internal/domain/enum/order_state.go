package enum

import (
	"encoding/json"
	"fmt"
)

// OrderState is the lifecycle position of an order
type OrderState int

const (
	OrderStateEmpty      OrderState = 0
	OrderStateBuilding   OrderState = 1
	OrderStateDiscounted OrderState = 2
	OrderStateFinalized  OrderState = 3
)

var orderStateNames = [...]string{"empty", "building", "discounted", "finalized"}

func (s OrderState) String() string {
	if s < 0 || int(s) >= len(orderStateNames) {
		return fmt.Sprintf("OrderState(%d)", int(s))
	}
	return orderStateNames[s]
}

func (s OrderState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderState(i)
		return nil
	}
	for i, name := range orderStateNames {
		if name == str {
			*s = OrderState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown order state %q", str)
}
