package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Gera o par de chaves RSA usado para assinar e validar os tokens de
// acesso. Os arquivos PEM resultantes são apontados por
// auth.privateKeyFile e auth.publicKeyFile na configuração.
func main() {
	var (
		outputDir string
		bits      int
	)

	flag.StringVar(&outputDir, "output", "./keys", "Diretório de saída para os arquivos PEM")
	flag.IntVar(&bits, "bits", 2048, "Tamanho da chave RSA em bits")
	flag.Parse()

	if err := os.MkdirAll(outputDir, 0o700); err != nil {
		fmt.Printf("Erro ao criar diretório: %v\n", err)
		os.Exit(1)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		fmt.Printf("Erro ao gerar chave RSA: %v\n", err)
		os.Exit(1)
	}

	privatePath := filepath.Join(outputDir, "private.pem")
	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err := os.WriteFile(privatePath, privatePEM, 0o600); err != nil {
		fmt.Printf("Erro ao escrever chave privada: %v\n", err)
		os.Exit(1)
	}

	publicBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		fmt.Printf("Erro ao serializar chave pública: %v\n", err)
		os.Exit(1)
	}

	publicPath := filepath.Join(outputDir, "public.pem")
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicBytes,
	})
	if err := os.WriteFile(publicPath, publicPEM, 0o644); err != nil {
		fmt.Printf("Erro ao escrever chave pública: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Chaves geradas:\n  %s\n  %s\n", privatePath, publicPath)
}
