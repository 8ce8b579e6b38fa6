package update_visit_status

// UpdateStatusRequest HTTP модель смены статуса
type UpdateStatusRequest struct {
	Status string `json:"status"` // scheduled, confirmed, done, cancelled
}
