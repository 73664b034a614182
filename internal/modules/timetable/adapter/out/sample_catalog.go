package out

import (
	"jadwal/internal/modules/timetable/domain"
	timetableout "jadwal/internal/modules/timetable/port/out"
)

const faculty = "Fak. Sains & Teknologi-1"

// SampleCatalog is the Gasal 2025/2026 schedule for 5TIF.
type SampleCatalog struct{}

func NewSampleCatalog() timetableout.SeedCatalog {
	return SampleCatalog{}
}

func (SampleCatalog) Courses() []domain.Course {
	return []domain.Course{
		{
			ID:       "1",
			Day:      domain.Selasa,
			Time:     domain.MustParseTimeRange("07:30-09:10"),
			Code:     "21TIF607",
			Name:     "Teori Bahasa dan Automata",
			Credits:  2,
			Class:    "5TIFA",
			Lecturer: "NADIA ANNISA MAORI, S.Kom., M.Kom.",
			Room:     "Ruang D102",
			Faculty:  faculty,
		},
		{
			ID:       "2",
			Day:      domain.Selasa,
			Time:     domain.MustParseTimeRange("10:00-11:40"),
			Code:     "21TIF501",
			Name:     "Metode Penelitian",
			Credits:  2,
			Class:    "5TIFA",
			Lecturer: "Ir. ADI SUCIPTO, M.Kom.",
			Room:     "Ruang D304",
			Faculty:  faculty,
		},
		{
			ID:       "3",
			Day:      domain.Rabu,
			Time:     domain.MustParseTimeRange("10:00-12:30"),
			Code:     "21TIF506",
			Name:     "Analisis dan Perancangan Sistem",
			Credits:  3,
			Class:    "5TIFC",
			Lecturer: "TEGUH TAMRIN, S.Kom., M.Kom.",
			Room:     "Ruang D104 (Lab Komputer)",
			Faculty:  faculty,
		},
		{
			ID:       "4",
			Day:      domain.Kamis,
			Time:     domain.MustParseTimeRange("07:30-10:00"),
			Code:     "21TIF503",
			Name:     "Sistem Cerdas",
			Credits:  2,
			Class:    "5TIFA",
			Lecturer: "NUR AENI WIDIASTUTI, S.Pd., M.Kom.",
			Room:     "Ruang D303",
			Faculty:  faculty,
		},
		{
			ID:       "5",
			Day:      domain.Kamis,
			Time:     domain.MustParseTimeRange("12:30-15:00"),
			Code:     "21TIF508",
			Name:     "Sistem Informasi Geografis",
			Credits:  3,
			Class:    "5TIFC",
			Lecturer: "HARMINTO MULYO, S.Kom. M.Kom.",
			Room:     "Ruang D101 (Lab Komputer)",
			Faculty:  faculty,
		},
		{
			ID:       "6",
			Day:      domain.Kamis,
			Time:     domain.MustParseTimeRange("15:00-16:40"),
			Code:     "21TIF507",
			Name:     "Interaksi Manusia dan Komputer",
			Credits:  2,
			Class:    "5TIFC",
			Lecturer: "GENTUR WAHYU NYIPTO WIBOWO, S.Kom., M.Kom.",
			Room:     "Ruang D103 (Lab Komputer)",
			Faculty:  faculty,
		},
	}
}
