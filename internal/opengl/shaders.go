package opengl

import (
	"errors"
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.3-core/gl"
)

var (
	ErrCompile = errors.New("shader compilation failed")
	ErrLink    = errors.New("shader program linking failed")
)

// ShaderError carries the driver's info log for a failed stage.
type ShaderError struct {
	Stage string // "vertex", "fragment" or "link"
	Log   string
	Err   error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Stage, e.Err, strings.TrimSpace(strings.TrimRight(e.Log, "\x00")))
}

func (e *ShaderError) Unwrap() error { return e.Err }

// Fixed uniform locations declared with layout(location = N) in the
// screen and droplet programs.
const (
	ScreenScaleLocation = 0
	ScreenPanLocation   = 1
	DropletTimeLocation = 0
)

// ── Shaders ───────────────────────────────────────────────────────────────────

// textureVertSrc — position + UV quad, passed through to clip space.
const textureVertSrc = `
#version 430 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;

layout (location = 0) out vec2 out_uv;

void main() {
    gl_Position = vec4(in_pos, 0.0, 1.0);
    out_uv = in_uv;
}
` + "\x00"

const textureFragSrc = `
#version 430 core
layout (location = 0) in vec2 in_uv;

layout (location = 0) out vec4 frag_color;

uniform sampler2D sampler;

void main() {
    frag_color = texture(sampler, in_uv);
}
` + "\x00"

// rainVertSrc — position + RGBA streak corners; alpha is interpolated
// between the top and bottom edge for the fading trail.
const rainVertSrc = `
#version 430 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec4 in_color;

layout (location = 0) out vec4 out_color;

void main() {
    gl_Position = vec4(in_pos, 0.0, 1.0);
    out_color = in_color;
}
` + "\x00"

const rainFragSrc = `
#version 430 core
layout (location = 0) in vec4 in_color;

layout (location = 0) out vec4 frag_color;

void main() {
    frag_color = in_color;
}
` + "\x00"

// screenVertSrc — like textureVertSrc with an aspect scale and pan offset.
const screenVertSrc = `
#version 430 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;

layout (location = 0) out vec2 out_uv;

layout (location = 0) uniform vec2 scale;
layout (location = 1) uniform vec2 cam_pos;

void main() {
    gl_Position = vec4(scale * in_pos + cam_pos, 0.0, 1.0);
    out_uv = in_uv;
}
` + "\x00"

// dropletVertSrc — maps the full quad to [0,1] texture space.
const dropletVertSrc = `
#version 430 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;

layout (location = 0) out vec2 frag_coord;

void main() {
    gl_Position = vec4(in_pos, 0.0, 1.0);
    frag_coord = in_pos * 0.5 + 0.5;
}
` + "\x00"

// dropletFragSrc — water running down glass. Each grid cell hashes to its
// own speed, phase and horizontal jitter; the resulting mask bends the UVs
// and blends a 3x3 blur over the sharp sample, then the scene is darkened,
// graded towards blue and given a highlight near the centre.
const dropletFragSrc = `
#version 430 core
layout (location = 0) in vec2 frag_coord;

layout (location = 0) out vec4 frag_color;

layout (location = 0) uniform float u_time;
uniform sampler2D u_texture;

float rand(vec2 co) {
    return fract(sin(dot(co, vec2(12.9898, 78.233))) * 43758.5453);
}

// x = droplet body, y = trail
vec4 movingDroplet(vec2 uv, float time) {
    vec2 grid = vec2(6.0, 3.0) * 3.0;
    vec2 id = floor(uv * grid);

    float speed = 0.5 + rand(id) * 0.5;
    float xOffset = (rand(id * 1.37) - 0.5) * 0.3;
    float startTime = rand(id * 2.45) * 10.0;

    vec2 st = fract(uv * grid) - vec2(0.5, 0.0);
    st.y += mod(time * speed + startTime, 2.0) - 1.0;

    float wiggle = sin(time * 2.0 + id.x * 10.0) * 0.05;
    vec2 dropPos = vec2(xOffset + wiggle, 0.5);

    float dropDist = length(st - dropPos);
    float drop = smoothstep(0.1, 0.0, dropDist);

    float trail = smoothstep(0.15, 0.0, abs(st.x - dropPos.x)) *
        smoothstep(0.0, 0.3, st.y - dropPos.y);

    return vec4(drop, trail, 0.0, 0.0);
}

void main() {
    vec2 uv = frag_coord;

    vec4 droplets = vec4(0.0);
    for (int i = 0; i < 2; i++) {
        float scale = 1.0 + float(i) * 0.15;
        droplets += movingDroplet(uv * scale, u_time * (1.0 + float(i) * 0.2));
    }

    float dropletEffect = min(1.0, droplets.x * 0.8 + droplets.y * 0.5);

    vec2 offset = vec2(0.0);
    if (dropletEffect > 0.0) {
        vec2 direction = normalize(uv - vec2(0.5));
        offset = direction * dropletEffect * 0.01;
    }
    vec2 distortedUV = uv + offset;

    vec3 blurredColor = vec3(0.0);
    float totalWeight = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            vec2 sampleUV = distortedUV + vec2(x, y) * 0.002;
            float weight = (x == 0 && y == 0) ? 4.0 : 1.0;
            blurredColor += texture(u_texture, sampleUV).rgb * weight;
            totalWeight += weight;
        }
    }
    blurredColor /= totalWeight;

    vec3 sharpColor = texture(u_texture, distortedUV).rgb;
    vec3 color = mix(sharpColor, blurredColor, dropletEffect);

    color *= 0.65;
    color = mix(color, vec3(0.6, 0.7, 0.8), 0.1);

    float highlight = smoothstep(0.08, 0.0, length(uv - vec2(0.5))) * dropletEffect * 0.8;
    color += highlight;

    frag_color = vec4(color, 1.0);
}
` + "\x00"

// ── Program set ───────────────────────────────────────────────────────────────

// ProgramCompiler builds a linked program from a vertex and fragment
// source pair and deletes programs it built.
type ProgramCompiler interface {
	NewProgram(vertSrc, fragSrc string) (uint32, error)
	DeleteProgram(id uint32)
}

// ShaderSet holds the four programs of the frame. It is either complete or
// not returned at all.
type ShaderSet struct {
	Texture Handle
	Rain    Handle
	Screen  Handle
	Droplet Handle
}

// NewShaderSet compiles all four programs. If any fails, those already
// built are deleted and the error names the failing program.
func NewShaderSet(c ProgramCompiler) (set *ShaderSet, err error) {
	s := &ShaderSet{}
	defer func() {
		if err != nil {
			s.Release()
		}
	}()

	programs := []struct {
		name       string
		vert, frag string
		dst        *Handle
	}{
		{"texture", textureVertSrc, textureFragSrc, &s.Texture},
		{"rain", rainVertSrc, rainFragSrc, &s.Rain},
		{"screen", screenVertSrc, textureFragSrc, &s.Screen},
		{"droplet", dropletVertSrc, dropletFragSrc, &s.Droplet},
	}
	for _, p := range programs {
		id, perr := c.NewProgram(p.vert, p.frag)
		if perr != nil {
			return nil, fmt.Errorf("%s program: %w", p.name, perr)
		}
		*p.dst = NewHandle(id, c.DeleteProgram)
	}
	return s, nil
}

func (s *ShaderSet) Release() {
	s.Texture.Release()
	s.Rain.Release()
	s.Screen.Release()
	s.Droplet.Release()
}

// GLCompiler compiles programs on the current GL context.
type GLCompiler struct{}

// NewProgram checks each stage's compile status and the link status. Stage
// objects are deleted whether or not linking succeeds.
func (GLCompiler) NewProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DetachShader(prog, vert)
	gl.DetachShader(prog, frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, &ShaderError{Stage: "link", Log: log, Err: ErrLink}
	}
	return prog, nil
}

func (GLCompiler) DeleteProgram(id uint32) { deleteProgram(id) }

func compileShader(src string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &ShaderError{Stage: stage, Log: log, Err: ErrCompile}
	}
	return shader, nil
}
