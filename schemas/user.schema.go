package schemas

import "github.com/VinukaThejana/blog/models"

// User is schema that contians user freindly user details
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Address   string `json:"address,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
	Verified  bool   `json:"verified"`
}

// LoginUser is the minimal user projection returned after logging in
type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FilterUser is a function that is used to filter the user model to a user freindly format
func FilterUser(user models.User) User {
	return User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		ImagePath: user.ImagePath,
		Verified:  user.Verified,
	}
}

// FilterLoginUser returns the login projection of the user
func FilterLoginUser(user models.User) LoginUser {
	return LoginUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
