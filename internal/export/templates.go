package export

import (
	"bytes"
	"text/template"

	"github.com/panostudio/engine/internal/model/core"
)

var playerTemplate = template.Must(template.New("player").Parse(`<!DOCTYPE html>
<html lang="ar">
<head>
    <meta charset="UTF-8">
    <title>{{.ProjectName}} - جولة افتراضية</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <link rel="stylesheet" href="style.css">
    <script src="https://unpkg.com/three@0.128.0/build/three.min.js"></script>
    <script src="https://unpkg.com/three@0.128.0/examples/js/controls/OrbitControls.js"></script>
</head>
<body>
    <div class="info">🏗️ {{.ProjectName}}</div>
    <div id="scene-name" class="scene-name"></div>
    <div id="container"></div>
    <div id="hotspots"></div>
    <div id="error" class="error" style="display:none"></div>

    <script>
        var SPHERE_RADIUS = 500;
        var MIN_SEGMENT_LENGTH = 5;
        var SEGMENT_RADIUS = 3.5;
        var MARKER_RADIUS = 6;

        var scene, camera, renderer, controls;
        var sphere = null;
        var overlays = [];
        var hotspotEntries = [];
        var tour = [];

        function fail(message) {
            var el = document.getElementById('error');
            el.textContent = message;
            el.style.display = 'block';
        }

        function init() {
            scene = new THREE.Scene();
            camera = new THREE.PerspectiveCamera(75, window.innerWidth / window.innerHeight, 0.1, 1000);
            camera.position.set(0, 0, 0.1);

            renderer = new THREE.WebGLRenderer({ antialias: true });
            renderer.setSize(window.innerWidth, window.innerHeight);
            document.getElementById('container').appendChild(renderer.domElement);

            scene.add(new THREE.AmbientLight(0xffffff, 1.5));

            controls = new THREE.OrbitControls(camera, renderer.domElement);
            controls.enableZoom = true;
            controls.enablePan = false;
            controls.enableDamping = true;
            controls.autoRotate = true;
            controls.autoRotateSpeed = 0.5;

            window.addEventListener('resize', function () {
                camera.aspect = window.innerWidth / window.innerHeight;
                camera.updateProjectionMatrix();
                renderer.setSize(window.innerWidth, window.innerHeight);
            });

            function animate() {
                requestAnimationFrame(animate);
                controls.update();
                updateHotspotOverlays();
                renderer.render(scene, camera);
            }
            animate();
        }

        function clearScene() {
            overlays.forEach(function (obj) { scene.remove(obj); });
            overlays = [];
            hotspotEntries.forEach(function (entry) { entry.el.remove(); });
            hotspotEntries = [];
            if (sphere) {
                scene.remove(sphere);
                sphere = null;
            }
        }

        function loadScene(record) {
            clearScene();
            document.getElementById('scene-name').textContent = record.name;

            new THREE.TextureLoader().load(record.image, function (texture) {
                texture.wrapS = THREE.RepeatWrapping;
                texture.wrapT = THREE.RepeatWrapping;
                texture.repeat.x = -1;

                sphere = new THREE.Mesh(
                    new THREE.SphereGeometry(SPHERE_RADIUS, 128, 128),
                    new THREE.MeshBasicMaterial({ map: texture, side: THREE.BackSide })
                );
                scene.add(sphere);

                buildPaths(record.paths || []);
                buildHotspots(record.hotspots || []);
            }, undefined, function () {
                fail('تعذر تحميل صورة البانوراما: ' + record.image);
            });
        }

        function buildPaths(paths) {
            paths.forEach(function (pathData) {
                var points = pathData.points.map(function (p) {
                    return new THREE.Vector3(p.x, p.y, p.z);
                });
                if (points.length < 2) return;

                for (var i = 0; i < points.length - 1; i++) {
                    var start = points[i];
                    var end = points[i + 1];
                    var direction = new THREE.Vector3().subVectors(end, start);
                    var distance = direction.length();
                    if (distance < MIN_SEGMENT_LENGTH) continue;

                    var cylinder = new THREE.Mesh(
                        new THREE.CylinderGeometry(SEGMENT_RADIUS, SEGMENT_RADIUS, distance, 12),
                        new THREE.MeshStandardMaterial({
                            color: pathData.color,
                            emissive: pathData.color,
                            emissiveIntensity: 0.3
                        })
                    );
                    var quaternion = new THREE.Quaternion();
                    quaternion.setFromUnitVectors(new THREE.Vector3(0, 1, 0), direction.clone().normalize());
                    cylinder.applyQuaternion(quaternion);
                    cylinder.position.copy(new THREE.Vector3().addVectors(start, end).multiplyScalar(0.5));
                    scene.add(cylinder);
                    overlays.push(cylinder);
                }

                var marker = new THREE.Mesh(
                    new THREE.SphereGeometry(MARKER_RADIUS, 16, 16),
                    new THREE.MeshBasicMaterial({ color: pathData.color })
                );
                marker.position.copy(points[0]);
                scene.add(marker);
                overlays.push(marker);
            });
        }

        function buildHotspots(hotspots) {
            var layer = document.getElementById('hotspots');
            hotspots.forEach(function (h) {
                var el = document.createElement('div');
                el.className = 'hotspot hotspot-' + h.type.toLowerCase();
                el.textContent = h.icon || 'ℹ️';
                el.title = h.type === 'SCENE' ? h.data.description : h.data.title;
                el.addEventListener('click', function () { activateHotspot(h); });
                layer.appendChild(el);

                hotspotEntries.push({
                    el: el,
                    position: new THREE.Vector3(h.position.x, h.position.y, h.position.z)
                });
            });
        }

        function activateHotspot(h) {
            if (h.type === 'SCENE') {
                var target = null;
                for (var i = 0; i < tour.length; i++) {
                    if (tour[i].id === h.data.targetSceneId) {
                        target = tour[i];
                        break;
                    }
                }
                if (!target) {
                    fail('المشهد المستهدف غير موجود: ' + h.data.targetSceneName);
                    return;
                }
                loadScene(target);
            } else if (h.type === 'INFO') {
                alert(h.data.title + '\n\n' + h.data.content);
            }
        }

        function updateHotspotOverlays() {
            hotspotEntries.forEach(function (entry) {
                var projected = entry.position.clone().project(camera);
                var behind = projected.z > 1;
                if (behind) {
                    entry.el.style.display = 'none';
                    return;
                }
                entry.el.style.display = 'block';
                entry.el.style.left = ((projected.x * 0.5 + 0.5) * window.innerWidth) + 'px';
                entry.el.style.top = ((-projected.y * 0.5 + 0.5) * window.innerHeight) + 'px';
            });
        }

        fetch('tour-data.json')
            .then(function (res) {
                if (!res.ok) throw new Error('tour-data.json: ' + res.status);
                return res.json();
            })
            .then(function (data) {
                if (!Array.isArray(data) || data.length === 0) {
                    throw new Error('empty tour data');
                }
                tour = data;
                init();
                loadScene(tour[0]);
            })
            .catch(function (err) {
                fail('تعذر تحميل بيانات الجولة: ' + err.message);
            });
    </script>
</body>
</html>
`))

const playerCSS = `body { margin: 0; overflow: hidden; font-family: Arial, sans-serif; }
#container { width: 100vw; height: 100vh; background: #000; }
.info {
    position: absolute;
    top: 20px;
    left: 20px;
    background: rgba(0,0,0,0.7);
    color: white;
    padding: 10px 20px;
    border-radius: 30px;
    border: 2px solid #4a6c8f;
    z-index: 100;
    font-weight: bold;
    backdrop-filter: blur(5px);
}
.scene-name {
    position: absolute;
    top: 20px;
    right: 20px;
    background: rgba(0,0,0,0.7);
    color: white;
    padding: 10px 20px;
    border-radius: 30px;
    z-index: 100;
    direction: rtl;
}
.hotspot {
    position: absolute;
    transform: translate(-50%, -50%);
    font-size: 28px;
    cursor: pointer;
    z-index: 50;
    user-select: none;
    text-shadow: 0 0 8px rgba(0,0,0,0.8);
}
.hotspot-info { filter: drop-shadow(0 0 6px #00aaff); }
.hotspot-scene { filter: drop-shadow(0 0 6px #ff8800); }
.error {
    position: absolute;
    top: 50%;
    left: 50%;
    transform: translate(-50%, -50%);
    background: rgba(160,0,0,0.9);
    color: white;
    padding: 20px 40px;
    border-radius: 10px;
    z-index: 200;
    direction: rtl;
    font-size: 18px;
}
`

var readmeTemplate = template.Must(template.New("readme").Parse(`# {{.ProjectName}}

## جولة افتراضية ثلاثية الأبعاد

### كيفية الاستخدام:
1. افتح ملف "index.html" في المتصفح (عبر خادم محلي مثل "python -m http.server")
2. استخدم الفأرة للتحرك داخل الجولة
3. انقر على العلامات للتنقل بين المشاهد أو عرض المعلومات

### المشاهد:
{{range .Scenes}}- {{.Name}}
{{end}}
### الأنظمة:
- 🟡 EL: كهرباء
- 🔵 AC: تكييف
- 🔵 WP: مياه
- 🔴 WA: صرف صحي
- 🟢 GS: غاز

### النشر على GitHub Pages:
1. ارفع محتويات هذا المجلد إلى مستودع GitHub
2. فعل GitHub Pages من الإعدادات
3. الجولة متاحة على: "https://[اسمك].github.io/[المشروع]"

---
تم إنشاؤها باستخدام Virtual Tour Studio © 2026
`))

func renderPlayerHTML(projectName string) ([]byte, error) {
	var buf bytes.Buffer
	err := playerTemplate.Execute(&buf, struct{ ProjectName string }{projectName})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderReadme(projectName string, scenes []core.Scene) ([]byte, error) {
	var buf bytes.Buffer
	err := readmeTemplate.Execute(&buf, struct {
		ProjectName string
		Scenes      []core.Scene
	}{projectName, scenes})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
