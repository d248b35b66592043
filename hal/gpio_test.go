package hal

import (
	"errors"
	"testing"
)

type countLED struct {
	high, low int
}

func (l *countLED) High() { l.high++ }
func (l *countLED) Low()  { l.low++ }

func TestVirtualPinConfigure(t *testing.T) {
	p := newVirtualPin("GPIO1", GPIOCapInput|GPIOCapOutput)

	if err := p.Write(true); err == nil {
		t.Fatal("Write on input pin succeeded")
	}
	if err := p.Configure(GPIOModeInput, GPIOPullUp); err == nil {
		t.Fatal("Configure with unsupported pull-up succeeded")
	}
	if err := p.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := p.Write(true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	level, err := p.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("Read() = false after Write(true)")
	}
}

func TestFindPin(t *testing.T) {
	led := &countLED{}
	g := newVirtualGPIO([]GPIOPin{
		newLEDPin("LED", led),
		newVirtualPin("GPIO1", GPIOCapInput),
	})

	p, err := FindPin(g, "GPIO1")
	if err != nil {
		t.Fatalf("FindPin: %v", err)
	}
	if p.Name() != "GPIO1" {
		t.Fatalf("Name() = %q, want GPIO1", p.Name())
	}
	if _, err := FindPin(g, "GPIO9"); !errors.Is(err, ErrNoPin) {
		t.Fatalf("FindPin(GPIO9) err = %v, want ErrNoPin", err)
	}
	if _, err := FindPin(nullGPIO{}, "LED"); !errors.Is(err, ErrNoPin) {
		t.Fatalf("FindPin on null GPIO err = %v, want ErrNoPin", err)
	}
}

func TestConfigureOutputDrivesLED(t *testing.T) {
	led := &countLED{}
	g := newVirtualGPIO([]GPIOPin{newLEDPin("LED", led)})

	out, err := ConfigureOutput(g, "LED")
	if err != nil {
		t.Fatalf("ConfigureOutput: %v", err)
	}
	if led.low != 1 {
		t.Fatalf("low = %d after ConfigureOutput, want 1", led.low)
	}
	out.High()
	out.Low()
	if led.high != 1 || led.low != 2 {
		t.Fatalf("high=%d low=%d, want 1/2", led.high, led.low)
	}
}

func TestConfigureOutputRejectsInputOnlyPin(t *testing.T) {
	g := newVirtualGPIO([]GPIOPin{newVirtualPin("IN", GPIOCapInput)})
	if _, err := ConfigureOutput(g, "IN"); err == nil {
		t.Fatal("ConfigureOutput on input-only pin succeeded")
	}
}
