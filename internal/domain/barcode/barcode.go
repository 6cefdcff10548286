// Package barcode genera y valida códigos de barras EAN-13 de uso interno
// y códigos internos secundarios. Algoritmo del dígito de control: suma
// ponderada módulo 10 (peso 1 en posiciones pares desde la izquierda,
// peso 3 en impares; dígito = (10 − suma mod 10) mod 10).
package barcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Prefijo de uso interno para códigos generados (rango EAN reservado).
const internalPrefix = "799"

// CodeLength longitud total de un código EAN-13.
const CodeLength = 13

// NewItemCode genera un código EAN-13: prefijo interno 799, nueve dígitos
// criptográficamente aleatorios y el dígito de control. La unicidad debe
// verificarse contra los productos existentes antes de aceptar el código.
func NewItemCode() string {
	buf := make([]byte, 0, CodeLength)
	buf = append(buf, internalPrefix...)
	for i := 0; i < 9; i++ {
		buf = append(buf, byte('0'+randDigit()))
	}
	check := checkDigit(buf)
	buf = append(buf, byte('0'+check))
	return string(buf)
}

// ValidateCode recalcula el dígito de control sobre los primeros 12
// dígitos y lo compara con el último. Entradas no numéricas o de longitud
// distinta a 13 devuelven false, nunca error.
func ValidateCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return checkDigit([]byte(code[:CodeLength-1])) == int(code[CodeLength-1]-'0')
}

// NewInternalCode genera un código interno secundario con prefijo, un
// componente derivado del reloj y un sufijo aleatorio pequeño. Unicidad
// best-effort: el caller debe verificarla contra los productos existentes.
func NewInternalCode(prefix string) string {
	if prefix == "" {
		prefix = "PRD"
	}
	ts := time.Now().UnixMilli() % 100000
	return fmt.Sprintf("%s-%05d-%03d", prefix, ts, randInt(1000))
}

// checkDigit calcula el dígito de control EAN-13 sobre los 12 primeros
// dígitos: peso 1 en índices pares, 3 en impares (0-based, izquierda).
func checkDigit(digits []byte) int {
	sum := 0
	for i, c := range digits {
		d := int(c - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return (10 - sum%10) % 10
}

func randDigit() int {
	return randInt(10)
}

// randInt devuelve un entero uniforme en [0, n) usando crypto/rand.
func randInt(n int64) int {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		// crypto/rand solo falla si el sistema no tiene fuente de entropía
		panic(fmt.Sprintf("barcode: fuente de aleatoriedad no disponible: %v", err))
	}
	return int(v.Int64())
}
