package core

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestPathKindColors(t *testing.T) {
	cases := []struct {
		kind PathKind
		want string
	}{
		{PathElectricity, "#ffcc00"},
		{PathAirConditioning, "#00ccff"},
		{PathWaterPipe, "#0066cc"},
		{PathWasteWater, "#ff3300"},
		{PathGas, "#33cc33"},
	}
	for _, tc := range cases {
		if got := tc.kind.Color(); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.kind, tc.want, got)
		}
		if !tc.kind.Valid() {
			t.Errorf("%s: expected Valid()", tc.kind)
		}
	}

	if PathKind("XX").Valid() {
		t.Error("unknown kind reported valid")
	}
	if got := PathKind("XX").Color(); got != "#ffffff" {
		t.Errorf("unknown kind color = %s", got)
	}
}

func TestPointDistance(t *testing.T) {
	a := Point3D{X: 0, Y: 0, Z: 0}
	b := Point3D{X: 3, Y: 4, Z: 0}
	if d := a.DistanceTo(b); d != 5 {
		t.Errorf("expected 5, got %f", d)
	}

	mid := a.Midpoint(b)
	if mid.X != 1.5 || mid.Y != 2 {
		t.Errorf("unexpected midpoint %+v", mid)
	}
}

func TestPointDistance_NearSphere(t *testing.T) {
	p := Point3D{X: 0, Y: 0, Z: SphereRadius}
	origin := Point3D{}
	if d := origin.DistanceTo(p); math.Abs(d-SphereRadius) > 1e-12 {
		t.Errorf("expected %f, got %f", SphereRadius, d)
	}
}

func TestHotspotJSON_InfoRoundTrip(t *testing.T) {
	h := Hotspot{
		ID:       "hs-1",
		Kind:     HotspotInfo,
		Position: Point3D{X: 10, Y: -20, Z: 480},
		Info:     &InfoData{Title: "Pump Room", Content: "Main water pumps."},
	}

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"type":"INFO"`) {
		t.Errorf("wire form missing type tag: %s", data)
	}
	if !strings.Contains(string(data), `"color":"#00aaff"`) {
		t.Errorf("wire form missing derived color: %s", data)
	}

	var back Hotspot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Info == nil || back.Info.Title != "Pump Room" {
		t.Errorf("info payload lost: %+v", back.Info)
	}
	if back.SceneLink != nil {
		t.Error("scene link payload set on INFO hotspot")
	}
}

func TestHotspotJSON_SceneLinkRoundTrip(t *testing.T) {
	h := Hotspot{
		ID:       "hs-2",
		Kind:     HotspotSceneLink,
		Position: Point3D{Z: 500},
		SceneLink: &SceneLinkData{
			TargetSceneID:   "scene-2",
			TargetSceneName: "Hall",
			Description:     "Go to Hall",
		},
	}

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back Hotspot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.SceneLink == nil || back.SceneLink.TargetSceneID != "scene-2" {
		t.Errorf("scene link payload lost: %+v", back.SceneLink)
	}
}

func TestHotspotJSON_InconsistentUnion(t *testing.T) {
	h := Hotspot{ID: "hs-3", Kind: HotspotInfo} // no payload
	if _, err := json.Marshal(h); err == nil {
		t.Error("expected error for INFO hotspot without payload")
	}

	h = Hotspot{ID: "hs-4", Kind: "BOGUS"}
	if _, err := json.Marshal(h); err == nil {
		t.Error("expected error for unknown kind")
	}

	var back Hotspot
	if err := json.Unmarshal([]byte(`{"id":"x","type":"BOGUS","data":{}}`), &back); err == nil {
		t.Error("expected error unmarshaling unknown kind")
	}
}
