package models

// SocialLinks always carries all four keys; unset links are empty strings
type SocialLinks struct {
	LinkedIn string `json:"linkedin" form:"linkedin" binding:"omitempty,max=300"`
	GitHub   string `json:"github" form:"github" binding:"omitempty,max=300"`
	Twitter  string `json:"twitter" form:"twitter" binding:"omitempty,max=300"`
	Website  string `json:"website" form:"website" binding:"omitempty,url,max=300"`
}

// Profile is the editable user record shown on the settings screen
type Profile struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Role        string      `json:"role"`
	Department  string      `json:"department"`
	YearOfStudy string      `json:"yearOfStudy"`
	Expertise   []string    `json:"expertise"`
	Interests   []string    `json:"interests"`
	Bio         string      `json:"bio"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

// Normalize replaces absent lists with empty ones so the record renders and
// round-trips with every key present
func (p Profile) Normalize() Profile {
	if p.Expertise == nil {
		p.Expertise = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p
}

// BasicDetails is the subset edited on the basic details tab
type BasicDetails struct {
	Name        string   `json:"name" form:"name" binding:"required,max=100"`
	Email       string   `json:"email" form:"email" binding:"omitempty,email,max=255"`
	Phone       string   `json:"phone" form:"phone" binding:"max=30"`
	Department  string   `json:"department" form:"department" binding:"max=100"`
	YearOfStudy string   `json:"yearOfStudy" form:"yearOfStudy" binding:"max=20"`
	Expertise   []string `json:"expertise" form:"expertise" binding:"max=20,dive,max=50"`
	Interests   []string `json:"interests" form:"interests" binding:"max=20,dive,max=50"`
	Bio         string   `json:"bio" form:"bio" binding:"max=5000"`
}

// PasswordForm holds the credential sub-form; it never travels with the profile
type PasswordForm struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" binding:"required,max=128"`
	NewPassword     string `json:"newPassword" form:"newPassword" binding:"required,max=128"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required,max=128"`
}

// PasswordChange is the payload of the password-update operation
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
