package api

// Credentials is the response from POST /auth/signin.
type Credentials struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// User is a single addressable recipient from GET /auth/getAllUserName.
type User struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Sender is the embedded sender of a received mail. The server omits it
// for messages whose sender account no longer exists.
type Sender struct {
	Name string `json:"name"`
}

// Mail is a single message from GET /mail.
type Mail struct {
	ID      string  `json:"_id"`
	Sender  *Sender `json:"sender"`
	Subject string  `json:"subject"`
	Content string  `json:"content"`
}

// OutgoingMail is the request body for POST /mail/send.
type OutgoingMail struct {
	SenderID  string `json:"senderId"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
}

// signInRequest is the request body for POST /auth/signin.
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signUpRequest is the request body for POST /auth/signup.
type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// errorResponse is the error payload shape shared by all endpoints.
type errorResponse struct {
	Message string `json:"message"`
}
