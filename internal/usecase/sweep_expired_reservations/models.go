package sweep_expired_reservations

import "time"

// Request параметры прохода
// Now - момент, относительно которого резервация считается просроченной; нулевое значение - текущее время
type Request struct {
	Now time.Time
}

// Response итог прохода
type Response struct {
	Released int `json:"released"`
	Failed   int `json:"failed"`
}
