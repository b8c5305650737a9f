package domain

// OfflineMessage is shown when the store failed without a usable message.
const OfflineMessage = "Erro desconhecido. A usar dados Offline."

// Fixtures returns the static dataset used when the store is unreachable at
// startup. Every call returns fresh slices.
func Fixtures() State {
	return State{
		Users: []User{
			{ID: "admin1", Name: "Administrador Geral", Role: RoleAdmin, Level: LevelPro, Avatar: "https://i.pravatar.cc/150?u=admin", Phone: "917772010", Password: "admin"},
			{ID: "u1", Name: "Treinador Ricardo", Role: RoleCoach, Level: LevelPro, Avatar: "https://i.pravatar.cc/150?u=u1", Phone: "912345678", Password: "admin"},
			{ID: "u2", Name: "João Silva", Role: RoleStudent, Level: LevelBeginner, Avatar: "https://i.pravatar.cc/150?u=u2", Phone: "911111111", Password: "123"},
			{ID: "u3", Name: "Maria Santos", Role: RoleStudent, Level: LevelIntermediate, Avatar: "https://i.pravatar.cc/150?u=u3", Phone: "922222222"},
			{ID: "u4", Name: "Pedro Lima", Role: RoleStudent, Level: LevelBeginner, Avatar: "https://i.pravatar.cc/150?u=u4", Phone: "933333333"},
			{ID: "u5", Name: "Ana Costa", Role: RoleStudent, Level: LevelAdvanced, Avatar: "https://i.pravatar.cc/150?u=u5", Phone: "944444444"},
		},
		Shifts: []Shift{
			{ID: "s1", DayOfWeek: Monday, StartTime: "18:00", DurationMinutes: 60, StudentIDs: []string{"u2", "u4"}, Level: LevelBeginner, Recurrence: RecurrenceWeekly},
			{ID: "s2", DayOfWeek: Wednesday, StartTime: "19:30", DurationMinutes: 90, StudentIDs: []string{"u3", "u5"}, Level: LevelIntermediate, Recurrence: RecurrenceWeekly},
			{ID: "s3", DayOfWeek: Friday, StartTime: "17:00", DurationMinutes: 60, StudentIDs: []string{"u2", "u3"}, Level: LevelBeginner, Recurrence: RecurrenceWeekly},
		},
		Sessions: []TrainingSession{
			{
				ID:          "ts1",
				ShiftID:     "s1",
				Date:        "2023-10-23",
				Active:      false,
				Completed:   true,
				AttendeeIDs: []string{"u2", "u4"},
				VideoURL:    "https://www.youtube.com/watch?v=k5q4y-6X6-Y",
				Notes:       "Foco em batidas de fundo e posicionamento de rede.",
				AIInsights:  "Os alunos demonstraram progresso na técnica de bandeja.",
			},
		},
	}
}
