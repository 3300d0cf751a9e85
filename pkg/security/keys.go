package security

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tainadev/microblog-go/pkg/config"
	"go.uber.org/zap"
)

// Claims carrega as informações embutidas no token de acesso. O subject
// registrado é o ID do usuário e o scope é a lista de nomes de roles
// separados por espaço.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// KeyManager assina e valida tokens JWT com um par de chaves RSA
type KeyManager struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	tokenTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewKeyManager cria um novo gerenciador de chaves a partir da configuração.
// As chaves são buscadas na seguinte ordem:
// 1. Arquivos PEM apontados por auth.privateKeyFile / auth.publicKeyFile
// 2. Variáveis de ambiente MB_AUTH_PRIVATE_KEY / MB_AUTH_PUBLIC_KEY (conteúdo PEM)
// 3. Par de chaves efêmero gerado em memória (apenas para desenvolvimento)
func NewKeyManager(cfg config.AuthConfig, logger *zap.Logger) (*KeyManager, error) {
	km := &KeyManager{
		issuer:   cfg.Issuer,
		tokenTTL: cfg.TokenTTL,
		logger:   logger,
		now:      time.Now,
	}

	privatePEM, publicPEM, err := loadKeyPEMs(cfg)
	if err != nil {
		return nil, err
	}

	if privatePEM == nil {
		// Sem chaves configuradas: gerar par efêmero. Tokens emitidos deixam
		// de ser válidos após reiniciar o processo.
		logger.Warn("nenhuma chave RSA configurada, gerando par de chaves efêmero")

		privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, fmt.Errorf("falha ao gerar par de chaves RSA: %w", err)
		}
		km.privateKey = privateKey
		km.publicKey = &privateKey.PublicKey
		return km, nil
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar chave privada RSA: %w", err)
	}
	km.privateKey = privateKey

	if publicPEM != nil {
		publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
		if err != nil {
			return nil, fmt.Errorf("falha ao carregar chave pública RSA: %w", err)
		}
		km.publicKey = publicKey
	} else {
		km.publicKey = &privateKey.PublicKey
	}

	return km, nil
}

// loadKeyPEMs busca o conteúdo PEM das chaves em arquivos ou variáveis de ambiente
func loadKeyPEMs(cfg config.AuthConfig) (privatePEM, publicPEM []byte, err error) {
	if cfg.PrivateKeyFile != "" {
		privatePEM, err = os.ReadFile(cfg.PrivateKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("falha ao ler arquivo de chave privada: %w", err)
		}
		if cfg.PublicKeyFile != "" {
			publicPEM, err = os.ReadFile(cfg.PublicKeyFile)
			if err != nil {
				return nil, nil, fmt.Errorf("falha ao ler arquivo de chave pública: %w", err)
			}
		}
		return privatePEM, publicPEM, nil
	}

	if env := os.Getenv("MB_AUTH_PRIVATE_KEY"); env != "" {
		privatePEM = []byte(env)
		if envPub := os.Getenv("MB_AUTH_PUBLIC_KEY"); envPub != "" {
			publicPEM = []byte(envPub)
		}
		return privatePEM, publicPEM, nil
	}

	return nil, nil, nil
}

// SignToken emite um token assinado para o usuário com o scope informado
func (km *KeyManager) SignToken(userID, scope string) (string, error) {
	now := km.now()

	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    km.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(km.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	tokenString, err := token.SignedString(km.privateKey)
	if err != nil {
		km.logger.Error("falha ao assinar token JWT", zap.Error(err))
		return "", err
	}

	return tokenString, nil
}

// VerifyToken valida assinatura e expiração de um token e retorna as claims
func (km *KeyManager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verificar o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return km.publicKey, nil
	}, jwt.WithIssuer(km.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token expirado")
		}
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("token inválido")
}

// TTLSeconds retorna a validade do token em segundos, usada no corpo da
// resposta de login
func (km *KeyManager) TTLSeconds() int64 {
	return int64(km.tokenTTL / time.Second)
}
