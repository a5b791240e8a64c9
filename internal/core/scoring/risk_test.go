package scoring

import "testing"

func TestProjectRisk_ComponentsCappedBeforeWeighting(t *testing.T) {
	levels := make([]int, 10)
	for i := range levels {
		levels[i] = 4
	}

	got := ProjectRisk(RiskInputs{
		OpenEscalationLevels: levels,
		NonCompliantCount:    50,
		OverdueActionCount:   50,
		EndDate:              daysFromNow(-365),
		Now:                  fixedNow,
	})

	if got.Escalation != 100 {
		t.Errorf("Escalation component = %v, want 100", got.Escalation)
	}
	if got.Compliance != 100 || got.OverdueActions != 100 || got.ScheduleSlip != 100 {
		t.Errorf("components = %+v, want all capped at 100", got)
	}
	if got.Score != 100 {
		t.Errorf("Score = %d, want 100", got.Score)
	}
}

func TestProjectRisk_Weighted(t *testing.T) {
	tests := []struct {
		name string
		in   RiskInputs
		want int
	}{
		{
			name: "no risk",
			in:   RiskInputs{Now: fixedNow, EndDate: daysFromNow(10)},
			want: 0,
		},
		{
			name: "single level 2 escalation",
			in:   RiskInputs{Now: fixedNow, OpenEscalationLevels: []int{2}},
			want: 20, // 50 * 0.4
		},
		{
			name: "one violation and one overdue action",
			in:   RiskInputs{Now: fixedNow, NonCompliantCount: 1, OverdueActionCount: 1},
			want: 14, // 33*0.3 + 20*0.2 = 13.9
		},
		{
			name: "ten days past end date",
			in:   RiskInputs{Now: fixedNow, EndDate: daysFromNow(-10)},
			want: 2, // 20 * 0.1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProjectRisk(tt.in); got.Score != tt.want {
				t.Errorf("ProjectRisk().Score = %d, want %d (%+v)", got.Score, tt.want, got)
			}
		})
	}
}

func TestDaysOverdue(t *testing.T) {
	if got := DaysOverdue(nil, fixedNow); got != 0 {
		t.Errorf("DaysOverdue(nil) = %d, want 0", got)
	}
	if got := DaysOverdue(daysFromNow(3), fixedNow); got != 0 {
		t.Errorf("DaysOverdue(future) = %d, want 0", got)
	}
	if got := DaysOverdue(daysFromNow(-7), fixedNow); got != 7 {
		t.Errorf("DaysOverdue(-7d) = %d, want 7", got)
	}
}

func TestComplianceRate(t *testing.T) {
	tests := []struct {
		ok, total int
		want      float64
	}{
		{0, 0, 100},
		{1, 3, 33.33},
		{4, 4, 100},
		{2, 3, 66.67},
	}

	for _, tt := range tests {
		if got := ComplianceRate(tt.ok, tt.total); got != tt.want {
			t.Errorf("ComplianceRate(%d, %d) = %v, want %v", tt.ok, tt.total, got, tt.want)
		}
	}
}

func TestNormalizeValue(t *testing.T) {
	if got := NormalizeValue(500, 500); got != 100 {
		t.Errorf("NormalizeValue(max, max) = %d, want 100", got)
	}
	if got := NormalizeValue(250, 1000); got != 25 {
		t.Errorf("NormalizeValue(250, 1000) = %d, want 25", got)
	}
	if got := NormalizeValue(0, 0); got != 0 {
		t.Errorf("NormalizeValue(0, 0) = %d, want 0", got)
	}
}
