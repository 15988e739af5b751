package models

type Target struct {
	Id        int64  `json:"id" gorm:"primaryKey"`
	MissionId int64  `json:"-" gorm:"not null;index"`
	Name      string `json:"name" gorm:"size:255;not null"`
	Country   string `json:"country" gorm:"size:100;not null"`
	Notes     string `json:"notes" gorm:"type:text"`
	State     bool   `json:"state" gorm:"not null"`
}

type TargetCreate struct {
	Name    string `json:"name" binding:"required,max=255"`
	Country string `json:"country" binding:"required,max=100"`
	Notes   string `json:"notes"`
	State   bool   `json:"state"`
}

func (t TargetCreate) ToTarget() Target {
	return Target{
		Name:    t.Name,
		Country: t.Country,
		Notes:   t.Notes,
		State:   t.State,
	}
}

// TargetUpdate is the body of PATCH /missions/{id}/targets/{targetId}/.
// Only notes are editable.
type TargetUpdate struct {
	Notes *string `json:"notes"`
}
