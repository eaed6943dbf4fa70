package jwt

import (
	"crypto/rsa"
	"os"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Issuer issues the JWT
const Issuer = "holdem-server"

// Audience is the intended JWT audience
const Audience = "holdem-client"

// tokenTTL is how long a player token is good for
const tokenTTL = time.Hour * 24 * 30

// Claims are the claims of a player token
type Claims struct {
	Name string `json:"name"`
	jwtgo.RegisteredClaims
}

// Keys signs and validates player tokens
type Keys struct {
	publicKey  *rsa.PublicKey
	privateKey *rsa.PrivateKey
}

// NewKeys returns keys from an existing private key
func NewKeys(privateKey *rsa.PrivateKey) *Keys {
	return &Keys{
		publicKey:  &privateKey.PublicKey,
		privateKey: privateKey,
	}
}

// LoadKeys will load the public and private keys from PEM files
func LoadKeys(publicKeyPath, privateKeyPath string) (*Keys, error) {
	publicKey, err := loadPublicKey(publicKeyPath)
	if err != nil {
		return nil, err
	}

	privateKey, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, err
	}

	return &Keys{
		publicKey:  publicKey,
		privateKey: privateKey,
	}, nil
}

// Sign will sign a JWT for the player
func (k *Keys) Sign(playerID int64, name string) (string, error) {
	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, Claims{
		Name: name,
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience:  jwtgo.ClaimStrings{Audience},
			ID:        uuid.New().String(),
			IssuedAt:  jwtgo.NewNumericDate(now),
			ExpiresAt: jwtgo.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    Issuer,
			Subject:   strconv.FormatInt(playerID, 10),
		},
	})

	return token.SignedString(k.privateKey)
}

// ValidPlayer will validate a signed JWT and return the player it was issued to
func (k *Keys) ValidPlayer(signedString string) (int64, string, error) {
	token, err := jwtgo.ParseWithClaims(signedString, &Claims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return k.publicKey, nil
	})

	if err != nil {
		return 0, "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, "", errors.New("claims were not valid")
	}

	if !containsAudience(claims.Audience, Audience) {
		return 0, "", errors.New("invalid audience")
	}

	if claims.Issuer != Issuer {
		return 0, "", errors.New("invalid issuer")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", errors.New("invalid subject")
	}

	return id, claims.Name, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read public key")
	}

	key, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse RSA public key")
	}

	return key, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read private key")
	}

	key, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse RSA private key")
	}

	return key, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
