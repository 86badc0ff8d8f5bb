package rest

import (
	"strings"

	"github.com/dmitrijs2005/placementportal/internal/common"
	"github.com/dmitrijs2005/placementportal/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"fullName"`
	RollNumber string `json:"rollNumber"`
	Department string `json:"department"`
	Year       string `json:"year"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *HTTPServer) signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, errBadBody)
	}

	res, err := s.credentials.Register(c.UserContext(), services.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		RollNumber: req.RollNumber,
		Department: req.Department,
		Year:       req.Year,
	})
	if err != nil {
		return s.fail(c, err)
	}

	return respond(c, fiber.StatusCreated, "Account created successfully", res)
}

func (s *HTTPServer) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, errBadBody)
	}

	res, err := s.credentials.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	return respond(c, fiber.StatusOK, "Login successful", res)
}

func (s *HTTPServer) verify(c *fiber.Ctx) error {
	user, err := s.credentials.VerifyToken(c.UserContext(), bearerToken(c.Get(common.AuthorizationHeaderName)))
	if err != nil {
		return s.fail(c, err)
	}

	return respond(c, fiber.StatusOK, "", fiber.Map{"user": user})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Any other scheme yields "".
func bearerToken(header string) string {
	prefix := common.BearerPrefix
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
