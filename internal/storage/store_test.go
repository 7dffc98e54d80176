package storage

import (
	"testing"

	"github.com/robosim-dev/swervesim/internal/drivetrain"
	"github.com/robosim-dev/swervesim/internal/geom"
	"github.com/robosim-dev/swervesim/internal/kinematics"
	"github.com/robosim-dev/swervesim/internal/scenario"
)

func fakeResult() *scenario.Result {
	return &scenario.Result{
		Scenario: "straight",
		Samples: []scenario.Sample{
			{
				Time: 0.02,
				Pose: drivetrain.Pose{
					Position: geom.Vector2{X: 0.1, Y: 0.0},
					Heading:  geom.NewRotation2(0.05),
				},
				Actual:     kinematics.ChassisSpeeds{VX: 1.0},
				Desired:    kinematics.ChassisSpeeds{VX: 3.0},
				Slipping:   2,
				DriveVolts: 7.5,
			},
			{
				Time:       0.04,
				Actual:     kinematics.ChassisSpeeds{VX: 1.5},
				Desired:    kinematics.ChassisSpeeds{VX: 3.0},
				DriveVolts: 7.5,
			},
		},
		Metrics: map[string]float64{"peak_speed": 1.5},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save(60.0, 5.0, fakeResult())
	if err != nil {
		t.Fatal(err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Scenario != "straight" {
		t.Errorf("expected scenario straight, got %s", meta.Scenario)
	}
	if meta.Mass != 60.0 {
		t.Errorf("expected mass 60, got %f", meta.Mass)
	}
	if meta.Metrics["peak_speed"] != 1.5 {
		t.Errorf("metrics not persisted: %v", meta.Metrics)
	}
}

func TestLoadSamples(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save(60.0, 5.0, fakeResult())
	if err != nil {
		t.Fatal(err)
	}

	rows, err := store.LoadSamples(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != len(sampleHeader) {
		t.Fatalf("expected %d columns, got %d", len(sampleHeader), len(rows[0]))
	}
	if rows[0][4] != 1.0 {
		t.Errorf("expected vx 1.0 in first row, got %f", rows[0][4])
	}
	if rows[0][10] != 2.0 {
		t.Errorf("expected slipping count 2, got %f", rows[0][10])
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Save(60.0, 5.0, fakeResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestListEmpty(t *testing.T) {
	store := New(t.TempDir() + "/does-not-exist")

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
