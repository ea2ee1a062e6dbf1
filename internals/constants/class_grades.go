package constants

// Daftar kelas yang valid. Kelas dipakai sebagai partition key
// untuk sequence roll number, jadi harus dari himpunan tetap ini.
var ClassGrades = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}

func IsValidClassGrade(grade string) bool {
	for _, g := range ClassGrades {
		if g == grade {
			return true
		}
	}
	return false
}
