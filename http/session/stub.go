package session

import "net/http"

var (
	_ SessionStorer   = Stub{}
	_ UserSessionable = Stub{}
)

// A Stub is an in-memory UserSessionable and SessionStorer for tests.
//
// A Stub with a zero ID has no user registered.
// Every method returning an error returns Err.
type Stub struct {
	ID  uint
	Err error

	// Deleted counts calls to Delete.
	Deleted *int
}

func (s Stub) GetSession(*http.Request) (UserSessionable, error) { return s, s.Err }

func (s Stub) Delete(http.ResponseWriter, *http.Request) error {
	if s.Deleted != nil {
		*s.Deleted++
	}

	return s.Err
}

func (s Stub) DeregisterUser(http.ResponseWriter, *http.Request) error     { return s.Err }
func (s Stub) Get(string) any                                              { return nil }
func (s Stub) RegisterUser(http.ResponseWriter, *http.Request, uint) error { return s.Err }
func (s Stub) ResetExpiry(http.ResponseWriter, *http.Request) error        { return s.Err }
func (s Stub) Save(http.ResponseWriter, *http.Request) error               { return s.Err }
func (s Stub) Set(http.ResponseWriter, *http.Request, string, any) error   { return s.Err }

func (s Stub) UserID() (uint, error) {
	if s.ID == 0 {
		return 0, ErrNoUser
	}

	return s.ID, nil
}
