package storefront

import (
	"context"
	"errors"

	"github.com/rechargehub/storefront/internal/domain/user"
	"github.com/rechargehub/storefront/internal/pkg/logger"
	"github.com/rechargehub/storefront/internal/pkg/validator"
	"github.com/rechargehub/storefront/pkg/client"
)

// AuthMode is the auth form's active mode.
type AuthMode string

const (
	ModeLogin  AuthMode = "LOGIN"
	ModeSignup AuthMode = "SIGNUP"
)

// genericAuthError is shown when the backend failed without a usable
// message.
const genericAuthError = "Authentication failed. Please try again."

// ErrSubmitInProgress is returned when Submit is called while an
// earlier submit is still running.
var ErrSubmitInProgress = errors.New("a submit is already in progress")

// AuthForm carries the form's field values. LOGIN uses email and
// password; SIGNUP additionally requires name and phone.
type AuthForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginFields struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupFields struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,strongpwd"`
}

// AuthFlow is the login/signup state machine. Modes are mutually
// exclusive; the submitting flag is orthogonal to them.
type AuthFlow struct {
	backend    Backend
	tokens     TokenStore
	validate   *validator.Validator
	log        *logger.Logger
	adminEmail string

	mode       AuthMode
	submitting bool
	errMsg     string
}

// NewAuthFlow creates an auth flow starting in LOGIN mode. Signups with
// adminEmail (case-insensitive) get the admin flag.
func NewAuthFlow(backend Backend, tokens TokenStore, adminEmail string, log *logger.Logger) *AuthFlow {
	if tokens == nil {
		tokens = NopTokenStore{}
	}
	return &AuthFlow{
		backend:    backend,
		tokens:     tokens,
		validate:   validator.New(),
		log:        log,
		adminEmail: adminEmail,
		mode:       ModeLogin,
	}
}

// Mode returns the active form mode.
func (f *AuthFlow) Mode() AuthMode {
	return f.mode
}

// Submitting reports whether a submit is in flight.
func (f *AuthFlow) Submitting() bool {
	return f.submitting
}

// Error returns the currently displayed error message, if any.
func (f *AuthFlow) Error() string {
	return f.errMsg
}

// ToggleMode switches between LOGIN and SIGNUP and clears any displayed
// error.
func (f *AuthFlow) ToggleMode() {
	if f.mode == ModeLogin {
		f.mode = ModeSignup
	} else {
		f.mode = ModeLogin
	}
	f.errMsg = ""
}

// Submit validates the form for the active mode and runs the
// login or signup sequence. On success it returns the session and
// resets the form state; on failure the flow stays editable with the
// error message set (server-provided text when available).
func (f *AuthFlow) Submit(ctx context.Context, form AuthForm) (*Session, error) {
	if f.submitting {
		return nil, ErrSubmitInProgress
	}
	f.errMsg = ""

	if err := f.validateForm(form); err != nil {
		f.errMsg = err.Error()
		return nil, err
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	// Best-effort existence lookup; a failure here must never block the
	// submit itself.
	if known := f.lookupEmail(ctx, form.Email); known != nil {
		f.log.Debugf("auth: email %s already registered", form.Email)
	}

	var (
		sess *Session
		err  error
	)
	if f.mode == ModeSignup {
		sess, err = f.signup(ctx, form)
	} else {
		sess, err = f.login(ctx, form)
	}
	if err != nil {
		f.errMsg = authErrorMessage(err)
		return nil, err
	}

	if f.mode == ModeSignup {
		f.mode = ModeLogin
	}
	return sess, nil
}

func (f *AuthFlow) validateForm(form AuthForm) error {
	var errs []validator.ValidationError
	if f.mode == ModeSignup {
		errs = f.validate.Validate(signupFields(form))
	} else {
		errs = f.validate.Validate(loginFields{Email: form.Email, Password: form.Password})
	}
	if len(errs) == 0 {
		return nil
	}
	// Match the form's behavior: one inline message at a time. Empty
	// fields get the blanket prompt, rule failures their own text.
	for _, e := range errs {
		if e.Tag == "required" {
			return validator.ValidationError{Message: "Please fill in all fields", Tag: e.Tag, Field: e.Field}
		}
	}
	return errs[0]
}

// lookupEmail checks the user list for the address. Errors are
// swallowed: the lookup is a UX nicety, not a gate.
func (f *AuthFlow) lookupEmail(ctx context.Context, email string) *client.User {
	users, err := f.backend.ListUsers(ctx)
	if err != nil {
		f.log.WithError(err).Debug("auth: user lookup failed, continuing")
		return nil
	}
	for i := range users {
		if user.EmailsEqual(users[i].Email, email) {
			return &users[i]
		}
	}
	return nil
}

// signup creates the user, immediately logs in with the same
// credentials, and returns a session built from the created user's
// projection.
func (f *AuthFlow) signup(ctx context.Context, form AuthForm) (*Session, error) {
	created, err := f.backend.CreateUser(ctx, client.CreateUserRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
		IsAdmin:  user.IsAdminEmail(form.Email, f.adminEmail),
	})
	if err != nil {
		return nil, err
	}

	resp, err := f.backend.Login(ctx, form.Email, form.Password)
	if err != nil {
		return nil, err
	}
	f.tokens.SaveToken(resp.Token)

	return &Session{User: user.FromClient(*created), Token: resp.Token}, nil
}

func (f *AuthFlow) login(ctx context.Context, form AuthForm) (*Session, error) {
	resp, err := f.backend.Login(ctx, form.Email, form.Password)
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.New("login response carried no user")
	}
	f.tokens.SaveToken(resp.Token)

	return &Session{User: user.FromClient(*resp.User), Token: resp.Token}, nil
}

// authErrorMessage surfaces the server's message when there is one and
// falls back to the generic text otherwise.
func authErrorMessage(err error) string {
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return genericAuthError
}
