package models

const (
	DefaultYearsOfExperience = 1
	DefaultSalary            = 100.0
)

type Cat struct {
	Id                int64   `json:"id" gorm:"primaryKey"`
	Name              string  `json:"name" gorm:"size:50;not null"`
	YearsOfExperience int     `json:"years_of_experience" gorm:"not null"`
	Breed             string  `json:"breed" gorm:"size:100;not null"`
	Salary            float64 `json:"salary" gorm:"not null"`
}

// CatCreate is the body of POST /cats/ and PUT /cats/{id}/.
type CatCreate struct {
	Name              string   `json:"name" binding:"required,min=1,max=50"`
	YearsOfExperience *int     `json:"years_of_experience" binding:"omitempty,gte=0"`
	Breed             string   `json:"breed" binding:"required,max=100"`
	Salary            *float64 `json:"salary" binding:"omitempty,gte=0"`
}

func (c CatCreate) ToCat() Cat {
	cat := Cat{
		Name:              c.Name,
		YearsOfExperience: DefaultYearsOfExperience,
		Breed:             c.Breed,
		Salary:            DefaultSalary,
	}
	if c.YearsOfExperience != nil {
		cat.YearsOfExperience = *c.YearsOfExperience
	}
	if c.Salary != nil {
		cat.Salary = *c.Salary
	}
	return cat
}

// ToUpdate converts a full replacement into an update. Omitted defaulted
// fields keep their stored values.
func (c CatCreate) ToUpdate() CatUpdate {
	name, breed := c.Name, c.Breed
	return CatUpdate{
		Name:              &name,
		YearsOfExperience: c.YearsOfExperience,
		Breed:             &breed,
		Salary:            c.Salary,
	}
}

// CatUpdate is the body of PATCH /cats/{id}/. Nil fields are left untouched.
type CatUpdate struct {
	Name              *string  `json:"name" binding:"omitempty,min=1,max=50"`
	YearsOfExperience *int     `json:"years_of_experience" binding:"omitempty,gte=0"`
	Breed             *string  `json:"breed" binding:"omitempty,min=1,max=100"`
	Salary            *float64 `json:"salary" binding:"omitempty,gte=0"`
}

func (u CatUpdate) Apply(cat *Cat) {
	if u.Name != nil {
		cat.Name = *u.Name
	}
	if u.YearsOfExperience != nil {
		cat.YearsOfExperience = *u.YearsOfExperience
	}
	if u.Breed != nil {
		cat.Breed = *u.Breed
	}
	if u.Salary != nil {
		cat.Salary = *u.Salary
	}
}
