package shop

import "fmt"

// State is the active presentation. Exactly one is active at a time.
type State int

const (
	Browsing State = iota
	CartReview
	Checkout
	Receipt
)

var stateNames = map[State]string{
	Browsing:   "browsing",
	CartReview: "cart",
	Checkout:   "checkout",
	Receipt:    "receipt",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// allowed lists the states reachable by an explicit navigation request.
// Receipt is reached only by confirming a checkout.
var allowed = map[State][]State{
	Browsing:   {Browsing, CartReview},
	CartReview: {Browsing, CartReview, Checkout},
	Checkout:   {Browsing, CartReview, Checkout, Receipt},
	Receipt:    {Browsing},
}

func canMove(from, to State) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}
