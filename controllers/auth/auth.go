package authController

import (
	"errors"
	"log"

	"campus/config"
	"campus/middleware"
	"campus/models"
	"campus/store"
	"campus/utils"
	authValidator "campus/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	cfg      *config.Config
	students *store.StudentStore
	mailer   *utils.Mailer
}

func New(cfg *config.Config, students *store.StudentStore, mailer *utils.Mailer) *AuthController {
	return &AuthController{cfg: cfg, students: students, mailer: mailer}
}

func (ctl *AuthController) Signup(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSignup").(*authValidator.SignupRequest)

	// Check if email already exists
	if _, err := ctl.students.GetByEmail(reqData.Email); err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Check if student code already exists
	if _, err := ctl.students.GetByCode(reqData.StudentCode); err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student code is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctl.cfg.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newStudent := models.Student{
		Name:        reqData.Name,
		Email:       reqData.Email,
		Password:    string(hashedPassword),
		StudentCode: reqData.StudentCode,
	}

	if err := ctl.students.Create(&newStudent); err != nil {
		// The unique indexes are authoritative; the checks above only
		// produce friendlier messages.
		if errors.Is(err, store.ErrDuplicateKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email or student code is already registered!", nil)
		}
		log.Printf("Error saving student to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register student!", nil)
	}

	token, err := middleware.GenerateJWT(ctl.cfg, newStudent.ID, newStudent.Name, newStudent.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	if ctl.cfg.EmailSender != "" {
		go func(student models.Student) {
			if err := ctl.mailer.SendWelcomeEmail(student.Email, student.Name, student.StudentCode); err != nil {
				log.Printf("Error sending welcome email to %s: %v", student.Email, err)
			}
		}(newStudent)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student registered successfully.", fiber.Map{
		"token":   token,
		"student": newStudent,
	})
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)

	// Unknown email and wrong password must be indistinguishable.
	student, err := ctl.students.GetByEmail(reqData.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	token, err := middleware.GenerateJWT(ctl.cfg, student.ID, student.Name, student.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token":   token,
		"student": student,
	})
}
