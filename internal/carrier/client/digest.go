package client

import "crypto/sha512"

// PasswordDigest считает SHA-512 от пароля и возвращает сырые байты дайджеста
// как последовательность беззнаковых значений. Протокол перевозчика ожидает
// именно массив чисел, а не hex-строку.
func PasswordDigest(password string) []int {
	sum := sha512.Sum512([]byte(password))

	digest := make([]int, len(sum))
	for i, b := range sum {
		digest[i] = int(b)
	}
	return digest
}
