package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/wund3run/arena-escrow-service/internal/domain"
)

// HTTPIdentityClient reads profiles from the identity service. The escrow
// engine only needs the arbitrator and verification flags; everything else
// about profiles stays in the identity subsystem.
type HTTPIdentityClient struct {
	Address string
}

func NewHTTPIdentityClient(address string) (*HTTPIdentityClient, error) {
	return &HTTPIdentityClient{
		Address: address,
	}, nil
}

type profileResponse struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	IsArbitrator bool   `json:"is_arbitrator"`
	IsVerified   bool   `json:"is_verified"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPIdentityClient) GetProfile(userID string) (*domain.Profile, error) {
	response, err := http.Get(fmt.Sprintf("%s/profiles/%s", c.Address, userID))
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: profile %s", domain.ErrNotFound, userID)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var profile profileResponse
		if err := json.Unmarshal(responseBodyBytes, &profile); err != nil {
			return nil, err
		}
		return &domain.Profile{
			ID:           profile.ID,
			DisplayName:  profile.DisplayName,
			IsArbitrator: profile.IsArbitrator,
			IsVerified:   profile.IsVerified,
		}, nil
	}

	var errBody errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errBody); err != nil {
		return nil, err
	}
	return nil, errors.New(errBody.Error)
}
